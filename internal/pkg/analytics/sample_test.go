package analytics

import (
	"Prism/internal/model"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeNotes(category string, n int) []*model.Note {
	notes := make([]*model.Note, 0, n)
	for i := 0; i < n; i++ {
		notes = append(notes, &model.Note{
			ID:        fmt.Sprintf("%s_%d", category, i),
			Category:  category,
			LikeCount: i,
		})
	}
	return notes
}

func TestStratifiedSampleTargetLargerThanInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	notes := makeNotes("美食料理", 30)

	sampled := StratifiedSample(notes, 100, rng)
	assert.Len(t, sampled, 30)
}

func TestStratifiedSampleRespectsTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	notes := append(makeNotes("美食料理", 500), makeNotes("旅行攻略", 500)...)

	sampled := StratifiedSample(notes, 300, rng)
	assert.LessOrEqual(t, len(sampled), 300)
	assert.Greater(t, len(sampled), 250)
}

func TestStratifiedSampleKeepsSmallCategories(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	notes := append(makeNotes("美食料理", 2000), makeNotes("萌宠日常", 40)...)

	sampled := StratifiedSample(notes, 500, rng)

	petCount := 0
	for _, note := range sampled {
		if note.Category == "萌宠日常" {
			petCount++
		}
	}
	// 小类目在保底配额内全量保留
	assert.Equal(t, 40, petCount)
}

func TestStratifiedSamplePrefersQualityHead(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	notes := makeNotes("美食料理", 1000)

	sampled := StratifiedSample(notes, 100, rng)
	require.NotEmpty(t, sampled)

	// 配额 70% 来自质量分头部，高赞笔记应占多数
	highQuality := 0
	for _, note := range sampled {
		if note.LikeCount >= 500 {
			highQuality++
		}
	}
	assert.Greater(t, highQuality, len(sampled)/2)
}

func TestStratifiedSampleDeterministicWithSeed(t *testing.T) {
	notes := append(makeNotes("美食料理", 300), makeNotes("旅行攻略", 300)...)

	first := StratifiedSample(notes, 200, rand.New(rand.NewSource(99)))
	second := StratifiedSample(notes, 200, rand.New(rand.NewSource(99)))

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}
