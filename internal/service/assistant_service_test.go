package service

import (
	"Prism/internal/api/dto"
	"Prism/internal/model"
	"Prism/internal/pkg/llm"
	"Prism/internal/pkg/mongo"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator 可编程的文本生成器替身
type fakeGenerator struct {
	titles []string
	ideas  []*llm.Idea
	err    error
	delay  time.Duration
	calls  int
}

func (f *fakeGenerator) GenerateTitles(ctx context.Context, topic string, count int) ([]string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.titles, f.err
}

func (f *fakeGenerator) GenerateIdeas(ctx context.Context, category string, count int) ([]*llm.Idea, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.ideas, f.err
}

// fakeAuditRepo 内存审计仓储替身
type fakeAuditRepo struct {
	records []*mongo.LLMAudit
}

func (f *fakeAuditRepo) SaveAudit(ctx context.Context, audit *mongo.LLMAudit) error {
	f.records = append(f.records, audit)
	return nil
}

func (f *fakeAuditRepo) GetRecent(ctx context.Context, kind string, limit int) ([]*mongo.LLMAudit, error) {
	out := make([]*mongo.LLMAudit, 0, limit)
	for _, record := range f.records {
		if kind != "" && record.Kind != kind {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, record)
	}
	return out, nil
}

func TestGenerateTitlesFromModel(t *testing.T) {
	gen := &fakeGenerator{titles: []string{"🔥秋冬护肤必看攻略", "七天养成好皮肤"}}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "护肤", Count: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "🔥秋冬护肤必看攻略", got[0].Title)
	assert.False(t, got[0].Fallback)
}

func TestGenerateTitlesFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "露营", Count: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)

	for _, suggestion := range got {
		assert.True(t, suggestion.Fallback)
		assert.Contains(t, suggestion.Title, "露营")
	}
	// 截止前失败会重试一次
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateTitlesFallbackPrefersHotNotes(t *testing.T) {
	notes := []*model.Note{
		{ID: "n1", Title: "露营装备全攻略，这些钱真不能省", Category: "户外", Tags: model.TagList{"露营"}, LikeCount: 99999, CommentCount: 500},
		{ID: "n2", Title: "周末露营新手清单", Category: "户外", Tags: model.TagList{"露营"}, LikeCount: 300, CommentCount: 10},
		{ID: "n3", Title: "秋冬面霜横评", Category: "美妆护肤", Tags: model.TagList{"护肤"}, LikeCount: 88888},
	}
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{notes: notes}, nil, "test-model", 0)

	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "露营", Count: 5})
	require.NoError(t, err)
	require.Len(t, got, 5)

	// 命中关键词的高热笔记标题排在模板前面，赞+评论*2 权重更高者居前
	assert.Equal(t, "露营装备全攻略，这些钱真不能省", got[0].Title)
	assert.Equal(t, "周末露营新手清单", got[1].Title)

	// 没有语料时同一请求只能给出模板结果
	emptySvc := NewAssistantService(&fakeGenerator{err: errors.New("model unavailable")}, &fakeNoteStore{}, nil, "test-model", 0)
	plain, err := emptySvc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "露营", Count: 5})
	require.NoError(t, err)
	assert.NotEqual(t, plain[0].Title, got[0].Title)
}

func TestGenerateTitlesFallbackPadsToCount(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "健身", Count: 15})
	require.NoError(t, err)
	require.Len(t, got, 15)

	seen := make(map[string]struct{})
	for _, suggestion := range got {
		assert.NotEmpty(t, suggestion.Title)
		seen[suggestion.Title] = struct{}{}
	}
	assert.Len(t, seen, 15)
}

func TestGenerateTitlesEmptyTopic(t *testing.T) {
	notes := []*model.Note{
		{ID: "n1", Title: "周末野餐拍照攻略", Category: "旅行攻略", LikeCount: 100},
	}
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{notes: notes}, nil, "test-model", 0)

	// 主题缺省时服务端自选类目继续生成，不报错
	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "   ", Count: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, suggestion := range got {
		assert.NotEmpty(t, suggestion.Title)
	}
}

func TestGenerateTitlesDefaultCount(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("down")}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "读书"})
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestGenerateTitlesTimeout(t *testing.T) {
	gen := &fakeGenerator{titles: []string{"不该出现的标题"}, delay: 300 * time.Millisecond}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 20*time.Millisecond)

	start := time.Now()
	got, err := svc.GenerateTitles(context.Background(), &dto.TitleRequestDTO{Topic: "烘焙", Count: 3})
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, suggestion := range got {
		assert.True(t, suggestion.Fallback)
	}
	// 超时后不再重试，直接走本地回退
	assert.Equal(t, 1, gen.calls)
	assert.Less(t, elapsed, 200*time.Millisecond)
}

func TestGenerateIdeasFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateIdeas(context.Background(), &dto.IdeaRequestDTO{Category: "美食料理", Count: 5})
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.True(t, got[0].Fallback)
	assert.Contains(t, got[0].Title, "美食料理")
	assert.NotEmpty(t, got[0].Tags)
}

func TestGenerateIdeasFallbackPrefersHotNotes(t *testing.T) {
	notes := []*model.Note{
		{ID: "n1", Title: "空气炸锅一周食谱", Content: "七天不重样的空气炸锅菜单，所有食材超市都能买到", Category: "美食料理", Tags: model.TagList{"食谱"}, LikeCount: 50000, CommentCount: 800},
		{ID: "n2", Title: "早餐十分钟搞定", Category: "美食料理", LikeCount: 120},
	}
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{notes: notes}, nil, "test-model", 0)

	got, err := svc.GenerateIdeas(context.Background(), &dto.IdeaRequestDTO{Category: "美食料理", Count: 4})
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "空气炸锅一周食谱", got[0].Title)
	assert.NotEmpty(t, got[0].Description)
	assert.Equal(t, []string{"食谱"}, got[0].Tags)
}

func TestGenerateIdeasFallbackPadsToCount(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateIdeas(context.Background(), &dto.IdeaRequestDTO{Category: "家居装饰", Count: 8})
	require.NoError(t, err)
	require.Len(t, got, 8)

	seen := make(map[string]struct{})
	for _, idea := range got {
		assert.NotEmpty(t, idea.Title)
		seen[idea.Title] = struct{}{}
	}
	assert.Len(t, seen, 8)
}

func TestGenerateIdeasFromModel(t *testing.T) {
	gen := &fakeGenerator{ideas: []*llm.Idea{
		{Title: "秋季穿搭公式", Description: "三件单品", Tags: []string{"穿搭"}},
	}}
	svc := NewAssistantService(gen, &fakeNoteStore{}, nil, "test-model", 0)

	got, err := svc.GenerateIdeas(context.Background(), &dto.IdeaRequestDTO{Category: "时尚穿搭", Count: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Fallback)
	assert.Equal(t, "秋季穿搭公式", got[0].Title)
}

func TestGetKeywords(t *testing.T) {
	notes := []*model.Note{
		{ID: "n1", Category: "美妆护肤", Tags: model.TagList{"护肤", "面膜"}, LikeCount: 100},
		{ID: "n2", Category: "美妆护肤", Tags: model.TagList{"护肤"}, LikeCount: 50},
		{ID: "n3", Category: "旅行攻略", Tags: model.TagList{"攻略"}, LikeCount: 500},
	}
	svc := NewAssistantService(&fakeGenerator{}, &fakeNoteStore{notes: notes}, nil, "test-model", 0)

	keywords, err := svc.GetKeywords(context.Background(), "美妆护肤")
	require.NoError(t, err)
	require.Len(t, keywords, 2)

	assert.Equal(t, "护肤", keywords[0].Keyword)
	assert.Equal(t, 2, keywords[0].NoteCount)
	assert.Equal(t, 150, keywords[0].Heat)
}

func TestGetKeywordsUnknownCategory(t *testing.T) {
	svc := NewAssistantService(&fakeGenerator{}, &fakeNoteStore{notes: trendFixture()}, nil, "test-model", 0)

	_, err := svc.GetKeywords(context.Background(), "不存在")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetAudits(t *testing.T) {
	repo := &fakeAuditRepo{records: []*mongo.LLMAudit{
		{Kind: "titles", Keyword: "护肤", Model: "test-model", Fallback: true, LatencyMs: 8000, ItemCount: 10, CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
		{Kind: "ideas", Keyword: "美食料理", Model: "test-model", ItemCount: 5, CreatedAt: time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC)},
	}}
	svc := NewAssistantService(&fakeGenerator{}, &fakeNoteStore{}, repo, "test-model", 0)

	audits, err := svc.GetAudits(context.Background(), "titles", 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)

	assert.Equal(t, "护肤", audits[0].Keyword)
	assert.True(t, audits[0].Fallback)
	assert.Equal(t, "2026-08-01T12:00:00Z", audits[0].CreatedAt)
}

func TestGetAuditsWithoutMongo(t *testing.T) {
	svc := NewAssistantService(&fakeGenerator{}, &fakeNoteStore{}, nil, "test-model", 0)

	audits, err := svc.GetAudits(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, audits)
}
