package analytics

import (
	"Prism/internal/model"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCategory(t *testing.T) {
	notes := []*model.Note{
		{Category: "美妆护肤", LikeCount: 10, ViewCount: 100},
		{Category: "美妆护肤", LikeCount: 20, ViewCount: 100},
		{Category: "旅行攻略", LikeCount: 5, ViewCount: 50},
		{Category: "美妆护肤", LikeCount: 30, ViewCount: 100},
	}

	stats := GroupByCategory(notes)
	require.Len(t, stats, 2)

	assert.Equal(t, "美妆护肤", stats[0].Label)
	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, 75.0, stats[0].Percent)
	assert.Equal(t, 60, stats[0].TotalEngagement)
	assert.Equal(t, 20.0, stats[0].AvgEngagement)
	assert.Equal(t, 20.0, stats[0].AvgLikes)
	assert.Equal(t, 0.0, stats[0].AvgComments)
	assert.Equal(t, 0.0, stats[0].AvgShares)
	assert.Equal(t, 100.0, stats[0].AvgViews)
	assert.InDelta(t, 20.0, stats[0].EngagementRate, 1e-9)

	assert.Equal(t, "旅行攻略", stats[1].Label)
	assert.Equal(t, 25.0, stats[1].Percent)
}

func TestGroupByCategoryEmpty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}

func TestGroupByHourBuckets(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 8, 1, hour, 30, 0, 0, time.UTC)
	}
	notes := []*model.Note{
		{PublishedAt: at(9), LikeCount: 10},
		{PublishedAt: at(9), LikeCount: 20},
		{PublishedAt: at(21), LikeCount: 5},
	}

	stats := GroupByHour(notes)
	require.Len(t, stats, 24)

	assert.Equal(t, 2, stats[9].Count)
	assert.Equal(t, 15.0, stats[9].AvgEngagement)
	assert.Equal(t, 1, stats[21].Count)
	assert.Equal(t, 0, stats[3].Count)
}

func TestDaypartLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "深夜"}, {5, "深夜"},
		{6, "上午"}, {11, "上午"},
		{12, "下午"}, {17, "下午"},
		{18, "晚上"}, {23, "晚上"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour_%d", tt.hour), func(t *testing.T) {
			assert.Equal(t, tt.want, DaypartLabel(tt.hour))
		})
	}
}

func TestGroupByDaypart(t *testing.T) {
	notes := []*model.Note{
		{PublishedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC)},
	}

	stats := GroupByDaypart(notes)
	require.Len(t, stats, 4)

	byLabel := make(map[string]*DaypartStat)
	for _, s := range stats {
		byLabel[s.Label] = s
	}

	assert.Equal(t, 2, byLabel["上午"].Count)
	assert.Equal(t, 100, byLabel["上午"].ActiveUsers)
	assert.Equal(t, 50.0, byLabel["上午"].Percent)
	assert.Equal(t, 1, byLabel["深夜"].Count)
	assert.Equal(t, 0, byLabel["下午"].Count)
}

func TestGroupByRegion(t *testing.T) {
	notes := []*model.Note{
		{Location: "上海"},
		{Location: "上海"},
		{Location: "成都"},
		{Location: ""},
	}

	stats := GroupByRegion(notes)
	require.Len(t, stats, 3)

	assert.Equal(t, "上海", stats[0].Location)
	assert.Equal(t, 50.0, stats[0].Percent)

	var other *RegionStat
	for _, s := range stats {
		if s.Location == "其他" {
			other = s
		}
	}
	require.NotNil(t, other)
	assert.Equal(t, 1, other.Count)
}

func TestGroupByAgeBandDeterministic(t *testing.T) {
	notes := make([]*model.Note, 0, 200)
	for i := 0; i < 200; i++ {
		notes = append(notes, &model.Note{ID: fmt.Sprintf("note_%d", i)})
	}

	first := GroupByAgeBand(notes)
	second := GroupByAgeBand(notes)
	require.Len(t, first, 7)

	var total float64
	for i := range first {
		assert.Equal(t, first[i].Percent, second[i].Percent)
		total += first[i].Percent
	}
	assert.InDelta(t, 100.0, total, 1.0)
	assert.Equal(t, "18-22", first[0].Range)
	assert.Equal(t, "50+", first[6].Range)
}

func TestGroupByAgeBandHonorsHint(t *testing.T) {
	notes := []*model.Note{
		{ID: "a1", AgeGroupHint: "18-22"},
		{ID: "a2", AgeGroupHint: "18-22"},
		{ID: "a3", AgeGroupHint: "Z世代大学生"},
		{ID: "a4", AgeGroupHint: "55+"},
	}

	stats := GroupByAgeBand(notes)
	require.Len(t, stats, 7)

	assert.Equal(t, 75.0, stats[0].Percent)
	assert.Equal(t, 25.0, stats[6].Percent)
	for i := 1; i < 6; i++ {
		assert.Equal(t, 0.0, stats[i].Percent)
	}
}

func TestGroupByAgeBandCoarseHintSubdivides(t *testing.T) {
	notes := make([]*model.Note, 0, 100)
	for i := 0; i < 100; i++ {
		notes = append(notes, &model.Note{ID: fmt.Sprintf("note_%d", i), AgeGroupHint: "26-35"})
	}

	stats := GroupByAgeBand(notes)
	require.Len(t, stats, 7)

	// 粗粒度画像只会落进 23-26 / 27-30 / 31-35 三档
	var middle float64
	for i := 1; i <= 3; i++ {
		middle += stats[i].Percent
	}
	assert.InDelta(t, 100.0, middle, 1.0)
	assert.Equal(t, 0.0, stats[0].Percent)
	assert.Equal(t, 0.0, stats[6].Percent)
}

func TestGroupByAgeBandUnknownHintFallsBackToHash(t *testing.T) {
	hinted := []*model.Note{{ID: "same_id", AgeGroupHint: "神秘群体"}}
	plain := []*model.Note{{ID: "same_id"}}

	withHint := GroupByAgeBand(hinted)
	withoutHint := GroupByAgeBand(plain)
	for i := range withHint {
		assert.Equal(t, withoutHint[i].Percent, withHint[i].Percent)
	}
}

func TestPlatformOverview(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	notes := []*model.Note{
		{ID: "1", Category: "美食料理", LikeCount: 10, PublishedAt: base.Add(-72 * time.Hour)},
		{ID: "2", Category: "美食料理", LikeCount: 10, PublishedAt: base.Add(-48 * time.Hour)},
		{ID: "3", Category: "旅行攻略", LikeCount: 20, PublishedAt: base.Add(-24 * time.Hour)},
		{ID: "4", Category: "美食料理", LikeCount: 20, PublishedAt: base.Add(-12 * time.Hour)},
	}

	stat := PlatformOverview(notes, base)

	assert.Equal(t, 4, stat.TotalNotes)
	assert.Equal(t, 12, stat.ActiveUsers) // floor(4 * 3.2)
	assert.Equal(t, "美食料理", stat.TopCategory)
	// 前一半互动 20，后一半 40，增长 100%
	assert.Equal(t, 100.0, stat.NotesGrowth)
	assert.Equal(t, 70.0, stat.UsersGrowth)
}

func TestPlatformOverviewEmpty(t *testing.T) {
	stat := PlatformOverview(nil, time.Now())
	assert.Equal(t, 0, stat.TotalNotes)
	assert.Equal(t, 0.0, stat.NotesGrowth)
}

func TestBestPostingHours(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 8, 1, hour, 0, 0, 0, time.UTC)
	}
	notes := []*model.Note{
		{Category: "美妆护肤", LikeCount: 10, PublishedAt: at(9)},
		{Category: "美妆护肤", LikeCount: 100, PublishedAt: at(21)},
		{Category: "旅行攻略", LikeCount: 50, PublishedAt: at(8)},
	}

	best := BestPostingHours(notes)
	assert.Equal(t, 21, best["美妆护肤"])
	assert.Equal(t, 8, best["旅行攻略"])
}
