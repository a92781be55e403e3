package analytics

import (
	"Prism/internal/model"
	"hash/fnv"
	"math"
	"sort"
	"time"
)

// CategoryStat 单类目聚合结果
type CategoryStat struct {
	Label           string
	Count           int
	Percent         float64
	TotalEngagement int
	AvgEngagement   float64
	AvgLikes        float64
	AvgComments     float64
	AvgShares       float64
	AvgViews        float64
	EngagementRate  float64
}

// HourStat 发布小时分布
type HourStat struct {
	Hour          int
	Count         int
	AvgEngagement float64
}

// DaypartStat 时段活跃度
type DaypartStat struct {
	Label       string
	Count       int
	Percent     float64
	ActiveUsers int
}

// RegionStat 地域分布
type RegionStat struct {
	Location string
	Count    int
	Percent  float64
}

// AgeGroupStat 年龄段画像
type AgeGroupStat struct {
	Range       string
	Label       string
	Percent     float64
	Tags        []string
	Consumption string
	Activity    string
}

// PlatformStat 平台概览
type PlatformStat struct {
	TotalNotes   int
	ActiveUsers  int
	DailyPosts   int
	NotesGrowth  float64
	UsersGrowth  float64
	TopCategory  string
	AvgHeatScore float64
}

// GroupByCategory 按类目聚合，结果按笔记数降序
func GroupByCategory(notes []*model.Note) []*CategoryStat {
	groups := make(map[string][]*model.Note)
	order := make([]string, 0)
	for _, note := range notes {
		if _, ok := groups[note.Category]; !ok {
			order = append(order, note.Category)
		}
		groups[note.Category] = append(groups[note.Category], note)
	}

	stats := make([]*CategoryStat, 0, len(order))
	for _, label := range order {
		members := groups[label]
		total, likes, comments, shares, views := 0, 0, 0, 0, 0
		for _, note := range members {
			total += note.Engagement()
			likes += note.LikeCount
			comments += note.CommentCount
			shares += note.ShareCount
			views += note.ViewCount
		}
		stat := &CategoryStat{
			Label:           label,
			Count:           len(members),
			TotalEngagement: total,
			EngagementRate:  EngagementRate(members),
		}
		if size := float64(len(members)); size > 0 {
			stat.AvgEngagement = round1(float64(total) / size)
			stat.AvgLikes = round1(float64(likes) / size)
			stat.AvgComments = round1(float64(comments) / size)
			stat.AvgShares = round1(float64(shares) / size)
			stat.AvgViews = round1(float64(views) / size)
		}
		if len(notes) > 0 {
			stat.Percent = round1(float64(len(members)) / float64(len(notes)) * 100)
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// GroupByHour 按发布小时聚合，返回 24 个槽位
func GroupByHour(notes []*model.Note) []*HourStat {
	counts := make([]int, 24)
	engagements := make([]int, 24)
	for _, note := range notes {
		h := note.PublishedAt.Hour()
		counts[h]++
		engagements[h] += note.Engagement()
	}

	stats := make([]*HourStat, 24)
	for h := 0; h < 24; h++ {
		stat := &HourStat{Hour: h, Count: counts[h]}
		if counts[h] > 0 {
			stat.AvgEngagement = round1(float64(engagements[h]) / float64(counts[h]))
		}
		stats[h] = stat
	}
	return stats
}

// DaypartLabel 发布时段划分
func DaypartLabel(hour int) string {
	switch {
	case hour < 6:
		return "深夜"
	case hour < 12:
		return "上午"
	case hour < 18:
		return "下午"
	default:
		return "晚上"
	}
}

var daypartOrder = []string{"上午", "下午", "晚上", "深夜"}

// GroupByDaypart 按时段聚合活跃度，活跃用户按每篇笔记约 50 人估算
func GroupByDaypart(notes []*model.Note) []*DaypartStat {
	counts := make(map[string]int)
	for _, note := range notes {
		counts[DaypartLabel(note.PublishedAt.Hour())]++
	}

	stats := make([]*DaypartStat, 0, len(daypartOrder))
	for _, label := range daypartOrder {
		stat := &DaypartStat{
			Label:       label,
			Count:       counts[label],
			ActiveUsers: counts[label] * 50,
		}
		if len(notes) > 0 {
			stat.Percent = round1(float64(counts[label]) / float64(len(notes)) * 100)
		}
		stats = append(stats, stat)
	}
	return stats
}

// GroupByRegion 按地域聚合，空地域并入「其他」，结果按数量降序
func GroupByRegion(notes []*model.Note) []*RegionStat {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, note := range notes {
		location := note.Location
		if location == "" {
			location = "其他"
		}
		if _, ok := counts[location]; !ok {
			order = append(order, location)
		}
		counts[location]++
	}

	stats := make([]*RegionStat, 0, len(order))
	for _, location := range order {
		stat := &RegionStat{Location: location, Count: counts[location]}
		if len(notes) > 0 {
			stat.Percent = round1(float64(counts[location]) / float64(len(notes)) * 100)
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// ageBand 年龄段档位定义，threshold 为笔记散列值的累计上界
type ageBand struct {
	upper       int
	rang        string
	label       string
	tags        []string
	consumption string
	activity    string
}

var ageBands = []ageBand{
	{22, "18-22", "Z世代大学生", []string{"学生党", "平价好物", "宿舍生活"}, "中", "极高"},
	{40, "23-26", "职场新人", []string{"通勤穿搭", "租房改造", "效率工具"}, "中高", "高"},
	{58, "27-30", "都市白领", []string{"轻奢", "护肤进阶", "周末出游"}, "高", "高"},
	{72, "31-35", "轻熟龄中产", []string{"品质生活", "母婴", "家居升级"}, "高", "中高"},
	{84, "36-40", "家庭主力军", []string{"亲子", "家庭采购", "健康管理"}, "中高", "中"},
	{94, "41-50", "成熟消费者", []string{"养生", "旅居", "理财"}, "中", "中"},
	{100, "50+", "银发族", []string{"广场舞", "养生茶", "含饴弄孙"}, "中低", "低"},
}

// bandForHint 把记录自带的年龄画像映射到档位。
// 精确档直接命中；粗粒度档（如 26-35）用散列值细分；认不出来的画像返回 false
func bandForHint(hint string, bucket int) (int, bool) {
	if hint == "" {
		return 0, false
	}
	for i, band := range ageBands {
		if hint == band.rang || hint == band.label {
			return i, true
		}
	}

	switch hint {
	case "18-25":
		if bucket < 50 {
			return 0, true
		}
		return 1, true
	case "26-35":
		if bucket < 25 {
			return 1, true
		}
		if bucket < 65 {
			return 2, true
		}
		return 3, true
	case "36-45":
		if bucket < 50 {
			return 4, true
		}
		return 5, true
	case "46-55":
		return 5, true
	case "55+":
		return 6, true
	}
	return 0, false
}

// GroupByAgeBand 受众年龄分布。优先使用记录自带的年龄画像，
// 缺画像时退回笔记 ID 的确定性散列，保证同一数据集的分布可复现
func GroupByAgeBand(notes []*model.Note) []*AgeGroupStat {
	counts := make([]int, len(ageBands))
	for _, note := range notes {
		bucket := hashBucket(note.ID)
		if i, ok := bandForHint(note.AgeGroupHint, bucket); ok {
			counts[i]++
			continue
		}
		for i, band := range ageBands {
			if bucket < band.upper {
				counts[i]++
				break
			}
		}
	}

	stats := make([]*AgeGroupStat, 0, len(ageBands))
	for i, band := range ageBands {
		stat := &AgeGroupStat{
			Range:       band.rang,
			Label:       band.label,
			Tags:        band.tags,
			Consumption: band.consumption,
			Activity:    band.activity,
		}
		if len(notes) > 0 {
			stat.Percent = round1(float64(counts[i]) / float64(len(notes)) * 100)
		}
		stats = append(stats, stat)
	}
	return stats
}

// PlatformOverview 全量笔记的平台级概览。
// 活跃用户与日发布量按数据集规模估算，增长率用前后两半对比。
func PlatformOverview(notes []*model.Note, now time.Time) *PlatformStat {
	stat := &PlatformStat{
		TotalNotes:  len(notes),
		ActiveUsers: int(float64(len(notes)) * 3.2),
		DailyPosts:  len(notes) / 30,
	}
	if len(notes) == 0 {
		return stat
	}

	sorted := make([]*model.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	half := len(sorted) / 2
	firstHalf, secondHalf := 0, 0
	for _, note := range sorted[:half] {
		firstHalf += note.Engagement()
	}
	for _, note := range sorted[half:] {
		secondHalf += note.Engagement()
	}
	if firstHalf > 0 {
		stat.NotesGrowth = round1(float64(secondHalf-firstHalf) / float64(firstHalf) * 100)
	}
	stat.UsersGrowth = round1(stat.NotesGrowth * 0.7)

	var heat float64
	for _, note := range notes {
		heat += HeatScore(note, now)
	}
	stat.AvgHeatScore = round1(heat / float64(len(notes)))

	if categories := GroupByCategory(notes); len(categories) > 0 {
		stat.TopCategory = categories[0].Label
	}
	return stat
}

// BestPostingHours 每个类目互动加权后的最佳发布小时
func BestPostingHours(notes []*model.Note) map[string]int {
	weights := make(map[string][]int)
	for _, note := range notes {
		if _, ok := weights[note.Category]; !ok {
			weights[note.Category] = make([]int, 24)
		}
		weights[note.Category][note.PublishedAt.Hour()] += note.Engagement()
	}

	best := make(map[string]int, len(weights))
	for category, hours := range weights {
		bestHour, bestWeight := 0, -1
		for h, w := range hours {
			if w > bestWeight {
				bestHour, bestWeight = h, w
			}
		}
		best[category] = bestHour
	}
	return best
}

func hashBucket(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
