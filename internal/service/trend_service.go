package service

import (
	"Prism/internal/api/dto"
	"Prism/internal/model"
	"Prism/internal/pkg/analytics"
	"Prism/internal/pkg/consts"
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	defaultTopicLimit = 10
	maxTopicLimit     = 50
)

// TrendService 热门内容与创作趋势
type TrendService interface {
	GetHotTopics(ctx context.Context, category string, limit int) ([]*dto.HotTopicDTO, error)
	GetCreationTrends(ctx context.Context, periodDays int) (*dto.CreationTrendsDTO, error)
}

type trendServiceImpl struct {
	noteSvc    NoteService
	classifier *analytics.Classifier

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTrendService(noteSvc NoteService, classifier *analytics.Classifier, rng *rand.Rand) TrendService {
	return &trendServiceImpl{
		noteSvc:    noteSvc,
		classifier: classifier,
		rng:        rng,
	}
}

// GetHotTopics 按热度分排序的热门笔记，可选类目过滤
func (s *trendServiceImpl) GetHotTopics(ctx context.Context, category string, limit int) ([]*dto.HotTopicDTO, error) {
	if limit <= 0 {
		limit = defaultTopicLimit
	}
	if limit > maxTopicLimit {
		limit = maxTopicLimit
	}

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

	now := time.Now()
	ranked := analytics.RankByHeat(notes, now)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	topics := make([]*dto.HotTopicDTO, 0, len(ranked))
	for _, note := range ranked {
		topics = append(topics, &dto.HotTopicDTO{
			ID:           note.ID,
			Title:        note.Title,
			Category:     note.Category,
			Author:       note.Author,
			Tags:         note.Tags,
			LikeCount:    note.LikeCount,
			CommentCount: note.CommentCount,
			ShareCount:   note.ShareCount,
			ViewCount:    note.ViewCount,
			HeatScore:    analytics.HeatScore(note, now),
			Sentiment:    s.classifier.Sentiment(note),
			PublishedAt:  note.PublishedAt.UTC().Format(time.RFC3339),
		})
	}
	return topics, nil
}

// GetCreationTrends 分层抽样后的类目与发布时段趋势。
// periodDays 大于 0 时只统计最近 N 天发布的笔记。
func (s *trendServiceImpl) GetCreationTrends(ctx context.Context, periodDays int) (*dto.CreationTrendsDTO, error) {
	notes, err := s.noteSvc.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}

	if periodDays > 0 {
		since := time.Now().UTC().AddDate(0, 0, -periodDays)
		recent := make([]*model.Note, 0, len(notes))
		for _, note := range notes {
			if !note.PublishedAt.Before(since) {
				recent = append(recent, note)
			}
		}
		notes = recent
	}
	if len(notes) == 0 {
		return nil, ErrNoData
	}

	s.mu.Lock()
	sample := analytics.StratifiedSample(notes, consts.MaxSampleSize, s.rng)
	s.mu.Unlock()

	bestHours := analytics.BestPostingHours(sample)

	categories := make([]*dto.CategoryTrendDTO, 0)
	for _, stat := range analytics.GroupByCategory(sample) {
		categories = append(categories, &dto.CategoryTrendDTO{
			Category:        stat.Label,
			NoteCount:       stat.Count,
			Percent:         stat.Percent,
			TotalEngagement: stat.TotalEngagement,
			AvgEngagement:   stat.AvgEngagement,
			AvgLikes:        stat.AvgLikes,
			AvgComments:     stat.AvgComments,
			AvgShares:       stat.AvgShares,
			AvgViews:        stat.AvgViews,
			EngagementRate:  stat.EngagementRate,
			BestPostingHour: bestHours[stat.Label],
		})
	}

	hours := make([]*dto.HourTrendDTO, 0, 24)
	for _, stat := range analytics.GroupByHour(sample) {
		hours = append(hours, &dto.HourTrendDTO{
			Hour:          stat.Hour,
			NoteCount:     stat.Count,
			AvgEngagement: stat.AvgEngagement,
		})
	}

	return &dto.CreationTrendsDTO{
		SampleSize:  len(sample),
		Categories:  categories,
		Hours:       hours,
		Suggestions: buildSuggestions(categories),
	}, nil
}

// maxSuggestions 头部类目建议条数上限
const maxSuggestions = 5

// buildSuggestions 基于头部类目的创作建议
func buildSuggestions(categories []*dto.CategoryTrendDTO) []string {
	suggestions := make([]string, 0, maxSuggestions)
	for i, stat := range categories {
		if i >= maxSuggestions {
			break
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"「%s」类目占比 %.1f%%，平均互动 %.1f，建议在 %d 点左右发布",
			stat.Category, stat.Percent, stat.AvgEngagement, stat.BestPostingHour))
	}
	return suggestions
}
