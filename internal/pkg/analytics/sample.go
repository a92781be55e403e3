package analytics

import (
	"Prism/internal/model"
	"math/rand"
	"sort"
)

// minSamplesPerCategory 每个类目至少保留的样本数，防止小类目被大类目完全稀释
const minSamplesPerCategory = 50

// StratifiedSample 按类目分层抽样。
//
// 每个类目先保底 minSamplesPerCategory 条，剩余预算按类目体量比例分配。
// 类目内部按质量分降序，配额的 70% 取头部，30% 从剩余笔记中随机补足，
// 兼顾代表性与长尾多样性。最终结果整体打乱。
func StratifiedSample(notes []*model.Note, target int, rng *rand.Rand) []*model.Note {
	if target >= len(notes) {
		sampled := make([]*model.Note, len(notes))
		copy(sampled, notes)
		rng.Shuffle(len(sampled), func(i, j int) {
			sampled[i], sampled[j] = sampled[j], sampled[i]
		})
		return sampled
	}

	groups := make(map[string][]*model.Note)
	order := make([]string, 0)
	for _, note := range notes {
		if _, ok := groups[note.Category]; !ok {
			order = append(order, note.Category)
		}
		groups[note.Category] = append(groups[note.Category], note)
	}

	// 保底配额
	reserved := 0
	for _, members := range groups {
		base := minSamplesPerCategory
		if len(members) < base {
			base = len(members)
		}
		reserved += base
	}
	remaining := target - reserved
	if remaining < 0 {
		remaining = 0
	}

	sampled := make([]*model.Note, 0, target)
	for _, label := range order {
		members := groups[label]

		quota := minSamplesPerCategory
		if len(members) < quota {
			quota = len(members)
		}
		quota += int(float64(len(members)) / float64(len(notes)) * float64(remaining))
		if quota > len(members) {
			quota = len(members)
		}

		sampled = append(sampled, sampleCategory(members, quota, rng)...)
	}

	rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	if len(sampled) > target {
		sampled = sampled[:target]
	}
	return sampled
}

// sampleCategory 单类目内抽样：70% 质量头部 + 30% 随机长尾
func sampleCategory(members []*model.Note, quota int, rng *rand.Rand) []*model.Note {
	if quota >= len(members) {
		picked := make([]*model.Note, len(members))
		copy(picked, members)
		return picked
	}

	ranked := make([]*model.Note, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return QualityScore(ranked[i]) > QualityScore(ranked[j])
	})

	headCount := int(float64(quota) * 0.7)
	picked := make([]*model.Note, 0, quota)
	picked = append(picked, ranked[:headCount]...)

	tail := ranked[headCount:]
	perm := rng.Perm(len(tail))
	for i := 0; i < quota-headCount && i < len(tail); i++ {
		picked = append(picked, tail[perm[i]])
	}
	return picked
}
