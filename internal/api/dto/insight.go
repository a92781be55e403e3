package dto

// AgeGroupDTO 受众年龄段画像
type AgeGroupDTO struct {
	Range       string   `json:"range"`
	Label       string   `json:"label"`
	Percent     float64  `json:"percent"`
	Tags        []string `json:"tags"`
	Consumption string   `json:"consumption"`
	Activity    string   `json:"activity"`
}

// RegionDTO 地域分布条目
type RegionDTO struct {
	Location  string  `json:"location"`
	NoteCount int     `json:"note_count"`
	Percent   float64 `json:"percent"`
}

// DaypartDTO 时段活跃度条目
type DaypartDTO struct {
	Label       string  `json:"label"`
	NoteCount   int     `json:"note_count"`
	Percent     float64 `json:"percent"`
	ActiveUsers int     `json:"active_users"`
}

// SentimentDTO 情感占比
type SentimentDTO struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// UserInsightsDTO 用户洞察返回包装
type UserInsightsDTO struct {
	SampleSize     int            `json:"sample_size"`
	EngagementRate float64        `json:"engagement_rate"`
	PeakHour       int            `json:"peak_hour"`
	AgeGroups      []*AgeGroupDTO `json:"age_groups"`
	Regions        []*RegionDTO   `json:"regions"`
	Dayparts       []*DaypartDTO  `json:"dayparts"`
	Sentiment      *SentimentDTO  `json:"sentiment"`
	GeneratedAt    string         `json:"generated_at"`
}
