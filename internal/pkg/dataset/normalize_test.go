package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotesFieldAliases(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	data := []byte(`[
		{"note_id":"n1","title":"护肤分享","desc":"正文","nickname":"小红","like_count":12,"comment_count":"3","ip_location":"上海","tag_list":["护肤"],"user_demographics":"26-35"},
		{"id":"n2","title":"旅行记录","content":"路线","author":"阿黄","likes":"88","views":1000,"age_group_hint":"18-22"}
	]`)

	notes, err := ParseNotes(data, now)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "正文", notes[0].Content)
	assert.Equal(t, "小红", notes[0].Author)
	assert.Equal(t, 12, notes[0].LikeCount)
	assert.Equal(t, 3, notes[0].CommentCount)
	assert.Equal(t, "上海", notes[0].Location)
	assert.Equal(t, []string{"护肤"}, []string(notes[0].Tags))
	assert.Equal(t, "26-35", notes[0].AgeGroupHint)

	assert.Equal(t, 88, notes[1].LikeCount)
	assert.Equal(t, 1000, notes[1].ViewCount)
	assert.Equal(t, "18-22", notes[1].AgeGroupHint)
}

func TestParseNotesDropsDirtyRows(t *testing.T) {
	now := time.Now().UTC()
	data := []byte(`[
		{"id":"ok","title":"有效笔记"},
		{"title":"没有ID"},
		{"id":"empty"},
		null
	]`)

	notes, err := ParseNotes(data, now)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "ok", notes[0].ID)
}

func TestParseNotesClampsNegativeCounts(t *testing.T) {
	now := time.Now().UTC()
	data := []byte(`[{"id":"n1","title":"t","like_count":-5,"view_count":-1}]`)

	notes, err := ParseNotes(data, now)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, 0, notes[0].LikeCount)
	assert.Equal(t, 0, notes[0].ViewCount)
}

func TestParseNotesInvalidJSON(t *testing.T) {
	_, err := ParseNotes([]byte(`{"not":"an array"}`), time.Now())
	assert.Error(t, err)
}

func TestParseFlexTimeFormats(t *testing.T) {
	fallback := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"epoch seconds", `1690000000`, time.Unix(1690000000, 0).UTC()},
		{"epoch millis", `1690000000000`, time.Unix(1690000000, 0).UTC()},
		{"rfc3339", `"2026-07-01T10:00:00Z"`, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)},
		{"datetime", `"2026-07-01 10:00:00"`, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)},
		{"date only", `"2026-07-01"`, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage falls back", `"昨天"`, fallback},
		{"empty falls back", `""`, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFlexTime([]byte(tt.raw), fallback)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestNormalizeFallsBackToCreateTime(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	raw := &RawNote{ID: "n1", Title: "t", CreateTime: []byte(`"2026-06-01 08:00:00"`)}

	note := raw.Normalize(now)
	assert.Equal(t, time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC), note.PublishedAt)
}
