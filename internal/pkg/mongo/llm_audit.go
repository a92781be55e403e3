package mongo

import (
	"time"
)

// LLMAudit LLM 调用审计明细
type LLMAudit struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	TraceID   string    `bson:"trace_id" json:"traceId"`
	Kind      string    `bson:"kind" json:"kind"`         // titles / ideas
	Keyword   string    `bson:"keyword" json:"keyword"`   // 请求主题词
	Model     string    `bson:"model" json:"model"`       // 实际调用的模型名
	Fallback  bool      `bson:"fallback" json:"fallback"` // 是否回退到本地模板
	LatencyMs int64     `bson:"latency_ms" json:"latencyMs"`
	ItemCount int       `bson:"item_count" json:"itemCount"` // 返回条目数
	Error     string    `bson:"error,omitempty" json:"error"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
