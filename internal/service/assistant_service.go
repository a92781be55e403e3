package service

import (
	"Prism/internal/api/dto"
	"Prism/internal/model"
	"Prism/internal/pkg/analytics"
	"Prism/internal/pkg/llm"
	"Prism/internal/pkg/logger"
	"Prism/internal/pkg/mongo"
	"context"
	"fmt"
	log "log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	defaultTitleCount = 10
	defaultIdeaCount  = 5
	maxKeywords       = 10
	maxAuditRecords   = 100

	// defaultGenerateTimeout 未配置超时时单次生成的硬上限
	defaultGenerateTimeout = 8 * time.Second
)

// TextGenerator 创作文本生成器，生产实现为 llm.Creator
type TextGenerator interface {
	GenerateTitles(ctx context.Context, topic string, count int) ([]string, error)
	GenerateIdeas(ctx context.Context, category string, count int) ([]*llm.Idea, error)
}

// AssistantService 创作助手：标题、选题与关键词推荐
type AssistantService interface {
	GenerateTitles(ctx context.Context, req *dto.TitleRequestDTO) ([]*dto.TitleSuggestionDTO, error)
	GenerateIdeas(ctx context.Context, req *dto.IdeaRequestDTO) ([]*dto.IdeaSuggestionDTO, error)
	GetKeywords(ctx context.Context, category string) ([]*dto.KeywordDTO, error)
	GetAudits(ctx context.Context, kind string, limit int) ([]*dto.LLMAuditDTO, error)
}

type assistantServiceImpl struct {
	generator TextGenerator
	noteSvc   NoteService
	audit     mongo.LLMAuditRepo
	modelName string
	timeout   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAssistantService(generator TextGenerator, noteSvc NoteService, audit mongo.LLMAuditRepo, modelName string, timeout time.Duration) AssistantService {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &assistantServiceImpl{
		generator: generator,
		noteSvc:   noteSvc,
		audit:     audit,
		modelName: modelName,
		timeout:   timeout,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateTitles 生成爆款标题。模型不可用时先从语料按关键词召回高热标题，
// 不足再用本地模板补齐到 count 条
func (s *assistantServiceImpl) GenerateTitles(ctx context.Context, req *dto.TitleRequestDTO) ([]*dto.TitleSuggestionDTO, error) {
	count := req.Count
	if count <= 0 {
		count = defaultTitleCount
	}
	topic := s.resolveKeyword(ctx, req.Topic)

	start := time.Now()
	titles, genErr := s.fetchTitles(ctx, topic, count)

	fallback := genErr != nil
	if fallback {
		log.WarnContext(ctx, "title generation fell back to local chain", "topic", topic, "err", genErr)
		titles = s.localTitles(ctx, topic, count)
	}
	s.saveAudit(ctx, "titles", topic, len(titles), fallback, time.Since(start), genErr)

	suggestions := make([]*dto.TitleSuggestionDTO, 0, len(titles))
	for _, title := range titles {
		suggestions = append(suggestions, &dto.TitleSuggestionDTO{Title: title, Fallback: fallback})
	}
	return suggestions, nil
}

// GenerateIdeas 生成选题建议，回退链与标题生成一致
func (s *assistantServiceImpl) GenerateIdeas(ctx context.Context, req *dto.IdeaRequestDTO) ([]*dto.IdeaSuggestionDTO, error) {
	count := req.Count
	if count <= 0 {
		count = defaultIdeaCount
	}
	category := s.resolveKeyword(ctx, req.Category)

	start := time.Now()
	ideas, genErr := s.fetchIdeas(ctx, category, count)

	fallback := genErr != nil
	if fallback {
		log.WarnContext(ctx, "idea generation fell back to local chain", "category", category, "err", genErr)
		ideas = s.localIdeas(ctx, category, count)
	}
	s.saveAudit(ctx, "ideas", category, len(ideas), fallback, time.Since(start), genErr)

	suggestions := make([]*dto.IdeaSuggestionDTO, 0, len(ideas))
	for _, idea := range ideas {
		suggestions = append(suggestions, &dto.IdeaSuggestionDTO{
			Title:       idea.Title,
			Description: idea.Description,
			Tags:        idea.Tags,
			Fallback:    fallback,
		})
	}
	return suggestions, nil
}

// resolveKeyword 关键词缺省时从语料里随机取一个类目，语料为空时用兜底类目
func (s *assistantServiceImpl) resolveKeyword(ctx context.Context, keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword != "" {
		return keyword
	}

	if notes, err := s.noteSvc.LoadNotes(ctx); err == nil && len(notes) > 0 {
		s.mu.Lock()
		note := notes[s.rng.Intn(len(notes))]
		s.mu.Unlock()
		if note.Category != "" {
			return note.Category
		}
	}
	return analytics.DefaultCategory
}

// fetchTitles 带超时调用生成器，截止前失败再重试一次
func (s *assistantServiceImpl) fetchTitles(ctx context.Context, topic string, count int) ([]string, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	titles, err := s.generator.GenerateTitles(genCtx, topic, count)
	if err != nil && genCtx.Err() == nil {
		titles, err = s.generator.GenerateTitles(genCtx, topic, count)
	}
	return titles, err
}

func (s *assistantServiceImpl) fetchIdeas(ctx context.Context, category string, count int) ([]*llm.Idea, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ideas, err := s.generator.GenerateIdeas(genCtx, category, count)
	if err != nil && genCtx.Err() == nil {
		ideas, err = s.generator.GenerateIdeas(genCtx, category, count)
	}
	return ideas, err
}

// localTitles 本地回退链：语料召回在前，模板补足到 count 条
func (s *assistantServiceImpl) localTitles(ctx context.Context, topic string, count int) []string {
	titles := s.corpusTitles(ctx, topic, count)
	for _, title := range templateTitles(topic, count) {
		if len(titles) >= count {
			break
		}
		titles = append(titles, title)
	}
	return titles
}

func (s *assistantServiceImpl) localIdeas(ctx context.Context, category string, count int) []*llm.Idea {
	ideas := s.corpusIdeas(ctx, category, count)
	for _, idea := range templateIdeas(category, count) {
		if len(ideas) >= count {
			break
		}
		ideas = append(ideas, idea)
	}
	return ideas
}

// corpusTitles 按关键词召回语料里的高热标题
func (s *assistantServiceImpl) corpusTitles(ctx context.Context, keyword string, count int) []string {
	matched := s.matchNotes(ctx, keyword)

	titles := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for _, note := range matched {
		if len(titles) >= count {
			break
		}
		title := strings.TrimSpace(note.Title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// corpusIdeas 把召回的高热笔记转成选题建议，描述取正文摘要
func (s *assistantServiceImpl) corpusIdeas(ctx context.Context, keyword string, count int) []*llm.Idea {
	matched := s.matchNotes(ctx, keyword)

	ideas := make([]*llm.Idea, 0, count)
	seen := make(map[string]struct{}, count)
	for _, note := range matched {
		if len(ideas) >= count {
			break
		}
		title := strings.TrimSpace(note.Title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}

		description := summarize(note.Content)
		if description == "" {
			description = fmt.Sprintf("围绕「%s」的热门笔记方向，拆解它的内容结构与互动点", keyword)
		}
		tags := note.Tags
		if len(tags) == 0 {
			tags = []string{keyword, "热门推荐"}
		}
		ideas = append(ideas, &llm.Idea{Title: title, Description: description, Tags: tags})
	}
	return ideas
}

// matchNotes 对标题、正文、类目和标签做小写子串匹配，按 赞+评论*2 降序
func (s *assistantServiceImpl) matchNotes(ctx context.Context, keyword string) []*model.Note {
	notes, err := s.noteSvc.LoadNotes(ctx)
	if err != nil || len(notes) == 0 {
		return nil
	}

	keyword = strings.ToLower(keyword)
	matched := make([]*model.Note, 0)
	for _, note := range notes {
		haystack := strings.ToLower(note.Title + " " + note.Content + " " + note.Category + " " + strings.Join(note.Tags, " "))
		if strings.Contains(haystack, keyword) {
			matched = append(matched, note)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LikeCount+matched[i].CommentCount*2 > matched[j].LikeCount+matched[j].CommentCount*2
	})
	return matched
}

// summarize 取正文开头作为选题描述
func summarize(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) > 50 {
		return string(runes[:50]) + "…"
	}
	return content
}

// GetKeywords 类目下的高热标签推荐
func (s *assistantServiceImpl) GetKeywords(ctx context.Context, category string) ([]*dto.KeywordDTO, error) {
	notes, err := s.noteSvc.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}

	if category != "" {
		filtered := make([]*model.Note, 0)
		for _, note := range notes {
			if note.Category == category {
				filtered = append(filtered, note)
			}
		}
		if len(filtered) == 0 {
			return nil, ErrCategoryNotFound
		}
		notes = filtered
	}

	// 头部笔记的标签更能代表当前热度
	top := analytics.TopByEngagement(notes, 500)

	counts := make(map[string]int)
	heats := make(map[string]int)
	for _, note := range top {
		for _, tag := range note.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			counts[tag]++
			heats[tag] += note.Engagement()
		}
	}

	keywords := make([]*dto.KeywordDTO, 0, len(counts))
	for tag, count := range counts {
		keywords = append(keywords, &dto.KeywordDTO{
			Keyword:   tag,
			NoteCount: count,
			Heat:      heats[tag],
		})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Heat > keywords[j].Heat
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords, nil
}

// GetAudits 查询最近的生成调用审计，Mongo 未接入时返回空列表
func (s *assistantServiceImpl) GetAudits(ctx context.Context, kind string, limit int) ([]*dto.LLMAuditDTO, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxAuditRecords {
		limit = maxAuditRecords
	}
	if s.audit == nil {
		return []*dto.LLMAuditDTO{}, nil
	}

	records, err := s.audit.GetRecent(ctx, kind, limit)
	if err != nil {
		return nil, err
	}

	audits := make([]*dto.LLMAuditDTO, 0, len(records))
	for _, record := range records {
		audits = append(audits, &dto.LLMAuditDTO{
			Kind:      record.Kind,
			Keyword:   record.Keyword,
			Model:     record.Model,
			Fallback:  record.Fallback,
			LatencyMs: record.LatencyMs,
			ItemCount: record.ItemCount,
			Error:     record.Error,
			CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return audits, nil
}

// saveAudit 异步落一条调用审计，Mongo 不可用时直接跳过
func (s *assistantServiceImpl) saveAudit(ctx context.Context, kind, keyword string, items int, fallback bool, latency time.Duration, genErr error) {
	if s.audit == nil {
		return
	}

	traceID, _ := ctx.Value(logger.TraceIDKey).(string)
	record := &mongo.LLMAudit{
		TraceID:   traceID,
		Kind:      kind,
		Keyword:   keyword,
		Model:     s.modelName,
		Fallback:  fallback,
		LatencyMs: latency.Milliseconds(),
		ItemCount: items,
		CreatedAt: time.Now().UTC(),
	}
	if genErr != nil {
		record.Error = genErr.Error()
	}

	go func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.audit.SaveAudit(saveCtx, record); err != nil {
			log.Warn("failed to save llm audit", "err", err)
		}
	}()
}

var titleTemplates = []string{
	"🔥%s必看攻略，新手也能轻松上手",
	"%s这样做，效果直接翻倍✨",
	"我试了30天%s，结果惊人",
	"%s避坑指南，别再踩雷了❗",
	"人人可复制的%s心得",
	"%s进阶玩法，99%%的人不知道",
	"低成本搞定%s的N种方式",
	"%s保姆级教程来了📒",
	"后悔没早点知道的%s技巧",
	"%s一周实测报告",
}

// templateTitles 本地标题模板，模板用完后带序号循环，总能凑满 count 条
func templateTitles(topic string, count int) []string {
	titles := make([]string, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf(titleTemplates[i%len(titleTemplates)], topic)
		if round := i / len(titleTemplates); round > 0 {
			title = fmt.Sprintf("%s 第%d弹", title, round+1)
		}
		titles = append(titles, title)
	}
	return titles
}

// templateIdeas 本地选题模板，循环规则与 templateTitles 一致
func templateIdeas(category string, count int) []*llm.Idea {
	base := []*llm.Idea{
		{
			Title:       fmt.Sprintf("%s新手入门指南", category),
			Description: fmt.Sprintf("从零开始了解%s，整理最常见的误区与实用建议", category),
			Tags:        []string{category, "新手", "攻略"},
		},
		{
			Title:       fmt.Sprintf("%s好物清单", category),
			Description: fmt.Sprintf("亲测好用的%s相关好物，按预算分档推荐", category),
			Tags:        []string{category, "好物", "推荐"},
		},
		{
			Title:       fmt.Sprintf("一周%s挑战记录", category),
			Description: fmt.Sprintf("连续七天打卡%s，记录每天的变化与心得", category),
			Tags:        []string{category, "打卡", "挑战"},
		},
		{
			Title:       fmt.Sprintf("%s避雷合集", category),
			Description: fmt.Sprintf("踩过的%s的坑都在这里，帮你省钱省时间", category),
			Tags:        []string{category, "避雷", "经验"},
		},
		{
			Title:       fmt.Sprintf("%s进阶技巧分享", category),
			Description: fmt.Sprintf("掌握基础之后，这些%s技巧能让你更上一层楼", category),
			Tags:        []string{category, "进阶", "干货"},
		},
	}

	ideas := make([]*llm.Idea, 0, count)
	for i := 0; i < count; i++ {
		tpl := base[i%len(base)]
		idea := &llm.Idea{Title: tpl.Title, Description: tpl.Description, Tags: tpl.Tags}
		if round := i / len(base); round > 0 {
			idea.Title = fmt.Sprintf("%s（%d）", tpl.Title, round+1)
		}
		ideas = append(ideas, idea)
	}
	return ideas
}
