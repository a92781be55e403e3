package dataset

import (
	"Prism/internal/model"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// FlexCount 兼容数字与字符串两种写法的计数字段
type FlexCount int

func (f *FlexCount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexCount(v)
	return nil
}

// RawNote 数据集原始笔记，字段命名在不同批次的导出文件中并不统一
type RawNote struct {
	ID          string          `json:"id"`
	NoteID      string          `json:"note_id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Desc        string          `json:"desc"`
	Author      string          `json:"author"`
	Nickname    string          `json:"nickname"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	TagList     []string        `json:"tag_list"`
	Location    string          `json:"location"`
	IPLocation  string          `json:"ip_location"`
	AgeHint     string          `json:"age_group_hint"`
	Demographic string          `json:"user_demographics"`
	Likes       FlexCount       `json:"likes"`
	LikeCount   FlexCount       `json:"like_count"`
	Comments    FlexCount       `json:"comments"`
	Comment     FlexCount       `json:"comment_count"`
	Shares      FlexCount       `json:"shares"`
	Share       FlexCount       `json:"share_count"`
	Views       FlexCount       `json:"views"`
	View        FlexCount       `json:"view_count"`
	PublishTime json.RawMessage `json:"publish_time"`
	PublishedAt json.RawMessage `json:"published_at"`
	CreateTime  json.RawMessage `json:"create_time"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseFlexTime 支持秒/毫秒时间戳与常见字符串格式，统一转为 UTC
func parseFlexTime(raw json.RawMessage, fallback time.Time) time.Time {
	if len(raw) == 0 {
		return fallback
	}

	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		return fallback
	}

	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		// 毫秒时间戳判定
		if epoch > 1e12 {
			epoch /= 1000
		}
		return time.Unix(epoch, 0).UTC()
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

func firstNonZero(values ...FlexCount) int {
	for _, v := range values {
		if v != 0 {
			return int(v)
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Normalize 将原始笔记归一化为内部模型。
// 负数计数一律钳到 0，缺失发布时间取加载时刻。
func (r *RawNote) Normalize(now time.Time) *model.Note {
	note := &model.Note{
		ID:           firstNonEmpty(r.ID, r.NoteID),
		Title:        r.Title,
		Content:      firstNonEmpty(r.Content, r.Desc),
		Author:       firstNonEmpty(r.Author, r.Nickname),
		Category:     r.Category,
		Location:     firstNonEmpty(r.Location, r.IPLocation),
		AgeGroupHint: strings.TrimSpace(firstNonEmpty(r.AgeHint, r.Demographic)),
		LikeCount:    clampCount(firstNonZero(r.LikeCount, r.Likes)),
		CommentCount: clampCount(firstNonZero(r.Comment, r.Comments)),
		ShareCount:   clampCount(firstNonZero(r.Share, r.Shares)),
		ViewCount:    clampCount(firstNonZero(r.View, r.Views)),
		PublishedAt:  parseFlexTime(r.PublishTime, time.Time{}),
	}

	if note.PublishedAt.IsZero() {
		note.PublishedAt = parseFlexTime(r.PublishedAt, time.Time{})
	}
	if note.PublishedAt.IsZero() {
		note.PublishedAt = parseFlexTime(r.CreateTime, now.UTC())
	}

	if len(r.Tags) > 0 {
		note.Tags = model.TagList(r.Tags)
	} else if len(r.TagList) > 0 {
		note.Tags = model.TagList(r.TagList)
	}
	return note
}

func clampCount(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// ParseNotes 解析一段 JSON 数组，单条失败不影响整体。
// 没有 ID 或标题与正文全空的脏数据直接丢弃。
func ParseNotes(data []byte, now time.Time) ([]*model.Note, error) {
	var raws []*RawNote
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	notes := make([]*model.Note, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		note := raw.Normalize(now)
		if note.ID == "" || (note.Title == "" && note.Content == "") {
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}
