package analytics

import (
	"Prism/internal/model"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeatScoreZeroEngagement(t *testing.T) {
	now := time.Now()
	note := &model.Note{PublishedAt: now}
	assert.Equal(t, 0.0, HeatScore(note, now))
}

func TestHeatScoreFreshNote(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	note := &model.Note{
		LikeCount:    100,
		CommentCount: 50,
		ShareCount:   10,
		PublishedAt:  now,
	}

	// engagement = 100*0.4 + 50*0.4 + 10*0.2 = 62
	want := math.Log(63) * 10
	assert.InDelta(t, want, HeatScore(note, now), 1e-9)
}

func TestHeatScoreDecaysOverTime(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	note := &model.Note{
		LikeCount:   1000,
		PublishedAt: now.Add(-24 * time.Hour),
	}
	fresh := &model.Note{
		LikeCount:   1000,
		PublishedAt: now,
	}

	old := HeatScore(note, now)
	assert.Less(t, old, HeatScore(fresh, now))
	// 衰减窗口一天，一天后应降到 1/e
	assert.InDelta(t, HeatScore(fresh, now)/math.E, old, 1e-9)
}

func TestHeatScoreCappedAt100(t *testing.T) {
	now := time.Now()
	note := &model.Note{
		LikeCount:    100_000_000,
		CommentCount: 100_000_000,
		ShareCount:   100_000_000,
		PublishedAt:  now,
	}
	assert.Equal(t, 100.0, HeatScore(note, now))
}

func TestHeatScoreFuturePublishTime(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := &model.Note{LikeCount: 100, PublishedAt: now.Add(time.Hour)}
	fresh := &model.Note{LikeCount: 100, PublishedAt: now}

	// 未来时间按零衰减处理，不会放大得分
	assert.Equal(t, HeatScore(fresh, now), HeatScore(future, now))
}

func TestRankByHeatOrdersDescending(t *testing.T) {
	now := time.Now()
	low := &model.Note{ID: "low", LikeCount: 1, PublishedAt: now}
	mid := &model.Note{ID: "mid", LikeCount: 100, PublishedAt: now}
	high := &model.Note{ID: "high", LikeCount: 10000, PublishedAt: now}

	ranked := RankByHeat([]*model.Note{low, high, mid}, now)

	assert.Equal(t, []string{"high", "mid", "low"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestRankByHeatStableForEqualScores(t *testing.T) {
	now := time.Now()
	a := &model.Note{ID: "a", LikeCount: 10, PublishedAt: now}
	b := &model.Note{ID: "b", LikeCount: 10, PublishedAt: now}

	ranked := RankByHeat([]*model.Note{a, b}, now)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
}

func TestEngagementWeight(t *testing.T) {
	note := &model.Note{LikeCount: 10, CommentCount: 5, ShareCount: 2}
	assert.Equal(t, 10+5*3+2*5, note.Engagement())
}

func TestEngagementRate(t *testing.T) {
	notes := []*model.Note{
		{LikeCount: 10, CommentCount: 5, ShareCount: 5, ViewCount: 1000},
		{LikeCount: 20, CommentCount: 5, ShareCount: 5, ViewCount: 1000},
	}
	assert.InDelta(t, 2.5, EngagementRate(notes), 1e-9)
}

func TestEngagementRateNoViews(t *testing.T) {
	notes := []*model.Note{{LikeCount: 10}}
	assert.Equal(t, 0.0, EngagementRate(notes))
}
