package dto

// TitleRequestDTO 标题生成请求，主题可缺省，缺省时由服务端自选类目
type TitleRequestDTO struct {
	Topic string `json:"topic" binding:"omitempty,max=50"`
	Count int    `json:"count" binding:"omitempty,min=1,max=20"`
}

// IdeaRequestDTO 选题生成请求，类目可缺省
type IdeaRequestDTO struct {
	Category string `json:"category" binding:"omitempty,max=50"`
	Count    int    `json:"count" binding:"omitempty,min=1,max=10"`
}

// TitleSuggestionDTO 标题建议
type TitleSuggestionDTO struct {
	Title    string `json:"title"`
	Fallback bool   `json:"fallback"`
}

// IdeaSuggestionDTO 选题建议
type IdeaSuggestionDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Fallback    bool     `json:"fallback"`
}

// KeywordDTO 类目关键词推荐
type KeywordDTO struct {
	Keyword   string `json:"keyword"`
	NoteCount int    `json:"note_count"`
	Heat      int    `json:"heat"`
}

// LLMAuditDTO 生成调用审计记录
type LLMAuditDTO struct {
	Kind      string `json:"kind"`
	Keyword   string `json:"keyword"`
	Model     string `json:"model"`
	Fallback  bool   `json:"fallback"`
	LatencyMs int64  `json:"latency_ms"`
	ItemCount int    `json:"item_count"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
}
