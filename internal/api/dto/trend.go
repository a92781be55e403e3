package dto

// CategoryTrendDTO 类目维度趋势条目
type CategoryTrendDTO struct {
	Category        string  `json:"category"`
	NoteCount       int     `json:"note_count"`
	Percent         float64 `json:"percent"`
	TotalEngagement int     `json:"total_engagement"`
	AvgEngagement   float64 `json:"avg_engagement"`
	AvgLikes        float64 `json:"avg_likes"`
	AvgComments     float64 `json:"avg_comments"`
	AvgShares       float64 `json:"avg_shares"`
	AvgViews        float64 `json:"avg_views"`
	EngagementRate  float64 `json:"engagement_rate"`
	BestPostingHour int     `json:"best_posting_hour"`
}

// HourTrendDTO 发布小时维度趋势条目
type HourTrendDTO struct {
	Hour          int     `json:"hour"`
	NoteCount     int     `json:"note_count"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// CreationTrendsDTO 创作趋势返回包装
type CreationTrendsDTO struct {
	SampleSize  int                 `json:"sample_size"`
	Categories  []*CategoryTrendDTO `json:"categories"`
	Hours       []*HourTrendDTO     `json:"hours"`
	Suggestions []string            `json:"suggestions"`
}
