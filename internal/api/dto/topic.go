package dto

// HotTopicDTO 热门笔记条目
type HotTopicDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Author       string   `json:"author"`
	Tags         []string `json:"tags"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
	ShareCount   int      `json:"share_count"`
	ViewCount    int      `json:"view_count"`
	HeatScore    float64  `json:"heat_score"`
	Sentiment    string   `json:"sentiment"`
	PublishedAt  string   `json:"published_at"`
}
