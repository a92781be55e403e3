package dto

// PlatformStatsDTO 平台概览
type PlatformStatsDTO struct {
	TotalNotes   int     `json:"total_notes"`
	ActiveUsers  int     `json:"active_users"`
	DailyPosts   int     `json:"daily_posts"`
	NotesGrowth  float64 `json:"notes_growth"`
	UsersGrowth  float64 `json:"users_growth"`
	TopCategory  string  `json:"top_category"`
	AvgHeatScore float64 `json:"avg_heat_score"`
}

// RealtimeStatsDTO 实时指标
type RealtimeStatsDTO struct {
	OnlineUsers    int    `json:"online_users"`
	PostsPerMinute int    `json:"posts_per_minute"`
	Interactions   int    `json:"interactions"`
	HotCategory    string `json:"hot_category"`
	GeneratedAt    string `json:"generated_at"`
}
