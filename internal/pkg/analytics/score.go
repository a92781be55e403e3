package analytics

import (
	"Prism/internal/model"
	"math"
	"sort"
	"time"
)

const (
	likeWeight    = 0.4
	commentWeight = 0.4
	shareWeight   = 0.2

	decayWindow = 24 * time.Hour
	scoreScale  = 10.0
	scoreCap    = 100.0
)

// HeatScore 加权互动量取对数后按发布时间指数衰减，结果封顶于 100。
// 衰减窗口为 24 小时：一天前的笔记得分约降至 1/e。
func HeatScore(note *model.Note, now time.Time) float64 {
	engagement := float64(note.LikeCount)*likeWeight +
		float64(note.CommentCount)*commentWeight +
		float64(note.ShareCount)*shareWeight

	age := now.Sub(note.PublishedAt)
	if age < 0 {
		age = 0
	}
	decay := math.Exp(-age.Seconds() / decayWindow.Seconds())

	score := math.Log(engagement+1) * decay * scoreScale
	return math.Min(score, scoreCap)
}

// QualityScore 采样阶段的质量分，浏览量只占极小权重避免刷量笔记霸榜
func QualityScore(note *model.Note) float64 {
	return float64(note.LikeCount) +
		float64(note.CommentCount)*2 +
		float64(note.ShareCount)*3 +
		float64(note.ViewCount)*0.001
}

// RankByHeat 按热度分降序排序，返回新切片不改动入参。
// 同分时保持原有先后顺序。
func RankByHeat(notes []*model.Note, now time.Time) []*model.Note {
	ranked := make([]*model.Note, len(notes))
	copy(ranked, notes)

	scores := make(map[*model.Note]float64, len(ranked))
	for _, note := range ranked {
		scores[note] = HeatScore(note, now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// TopByEngagement 按列表互动权重降序取前 n 条
func TopByEngagement(notes []*model.Note, n int) []*model.Note {
	ranked := make([]*model.Note, len(notes))
	copy(ranked, notes)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement() > ranked[j].Engagement()
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// EngagementRate 互动率 = 总互动 / 总浏览 * 100，无浏览时为 0
func EngagementRate(notes []*model.Note) float64 {
	var interactions, views int64
	for _, note := range notes {
		interactions += int64(note.LikeCount + note.CommentCount + note.ShareCount)
		views += int64(note.ViewCount)
	}
	if views == 0 {
		return 0
	}
	return float64(interactions) / float64(views) * 100
}
