package service

import (
	"Prism/internal/api/dto"
	"Prism/internal/model"
	"Prism/internal/pkg/analytics"
	"Prism/internal/pkg/consts"
	"Prism/internal/pkg/redis"
	"context"
	log "log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const (
	insightCacheTTL = 5 * time.Minute
	maxRegions      = 10
)

// InsightService 受众画像洞察，结果缓存 5 分钟
type InsightService interface {
	GetUserInsights(ctx context.Context) (*dto.UserInsightsDTO, error)
	RefreshInsights(ctx context.Context) error
}

type insightServiceImpl struct {
	noteSvc    NoteService
	classifier *analytics.Classifier

	mu  sync.Mutex
	rng *rand.Rand
}

func NewInsightService(noteSvc NoteService, classifier *analytics.Classifier, rng *rand.Rand) InsightService {
	return &insightServiceImpl{
		noteSvc:    noteSvc,
		classifier: classifier,
		rng:        rng,
	}
}

// GetUserInsights 先查快照缓存，未命中再全量计算
func (s *insightServiceImpl) GetUserInsights(ctx context.Context) (*dto.UserInsightsDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.UserInsightsKey); err == nil && cached != "" {
		var insights dto.UserInsightsDTO
		if err = json.Unmarshal([]byte(cached), &insights); err == nil {
			return &insights, nil
		}
		log.WarnContext(ctx, "broken insight snapshot, recomputing", "err", err)
	}

	insights, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(insights); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.UserInsightsKey, data, insightCacheTTL); err != nil {
			log.WarnContext(ctx, "failed to cache insight snapshot", "err", err)
		}
	}
	return insights, nil
}

// RefreshInsights 抢到分布式锁后重算快照，由定时任务触发
func (s *insightServiceImpl) RefreshInsights(ctx context.Context) error {
	locked, err := redis.TryLock(ctx, consts.InsightRefreshLock, "1", time.Minute, 1)
	if err != nil {
		return err
	}
	if !locked {
		log.InfoContext(ctx, "insight refresh already running elsewhere")
		return nil
	}
	defer redis.UnLock(ctx, consts.InsightRefreshLock, "1")

	insights, err := s.compute(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(insights)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.UserInsightsKey, data, insightCacheTTL)
}

func (s *insightServiceImpl) compute(ctx context.Context) (*dto.UserInsightsDTO, error) {
	notes, err := s.noteSvc.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoData
	}

	s.mu.Lock()
	sample := analytics.StratifiedSample(notes, consts.MaxSampleSize, s.rng)
	s.mu.Unlock()

	ageGroups := make([]*dto.AgeGroupDTO, 0)
	if err = copier.Copy(&ageGroups, analytics.GroupByAgeBand(sample)); err != nil {
		return nil, err
	}

	regions := make([]*dto.RegionDTO, 0)
	for i, stat := range analytics.GroupByRegion(sample) {
		if i >= maxRegions {
			break
		}
		regions = append(regions, &dto.RegionDTO{
			Location:  stat.Location,
			NoteCount: stat.Count,
			Percent:   stat.Percent,
		})
	}

	dayparts := make([]*dto.DaypartDTO, 0)
	for _, stat := range analytics.GroupByDaypart(sample) {
		dayparts = append(dayparts, &dto.DaypartDTO{
			Label:       stat.Label,
			NoteCount:   stat.Count,
			Percent:     stat.Percent,
			ActiveUsers: stat.ActiveUsers,
		})
	}

	return &dto.UserInsightsDTO{
		SampleSize:     len(sample),
		EngagementRate: analytics.EngagementRate(sample),
		PeakHour:       peakHour(sample),
		AgeGroups:      ageGroups,
		Regions:        regions,
		Dayparts:       dayparts,
		Sentiment:      s.sentimentShare(sample),
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// peakHour 抽样集发布量最高的小时
func peakHour(sample []*model.Note) int {
	best, bestCount := 0, -1
	for _, stat := range analytics.GroupByHour(sample) {
		if stat.Count > bestCount {
			best, bestCount = stat.Hour, stat.Count
		}
	}
	return best
}

// sentimentShare 抽样集的情感占比
func (s *insightServiceImpl) sentimentShare(sample []*model.Note) *dto.SentimentDTO {
	share := &dto.SentimentDTO{}
	if len(sample) == 0 {
		return share
	}

	var positive, negative, neutral float64
	for _, note := range sample {
		switch s.classifier.Sentiment(note) {
		case consts.SentimentPositive:
			positive++
		case consts.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	total := float64(len(sample))
	share.Positive = math.Round(positive/total*1000) / 10
	share.Negative = math.Round(negative/total*1000) / 10
	share.Neutral = math.Round(neutral/total*1000) / 10
	return share
}
