package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Note 笔记归档模型，来自数据集加载或 Kafka 采集通道
type Note struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	Author       string    `gorm:"type:varchar(128)" json:"author"`
	Category     string    `gorm:"type:varchar(64);index:idx_category" json:"category"`
	Tags         TagList   `gorm:"type:json" json:"tags"`
	Location     string    `gorm:"type:varchar(64)" json:"location"`
	AgeGroupHint string    `gorm:"type:varchar(16)" json:"age_group_hint,omitempty"`
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	ShareCount   int       `gorm:"not null;default:0" json:"share_count"`
	ViewCount    int       `gorm:"not null;default:0" json:"view_count"`
	PublishedAt  time.Time `gorm:"index:idx_published_at" json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Note) TableName() string {
	return "notes"
}

// TagList 笔记标签快照
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TagList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, t)
}

// Engagement 列表排序用互动权重
func (n *Note) Engagement() int {
	return n.LikeCount + n.CommentCount*3 + n.ShareCount*5
}
