package service

import (
	"Prism/internal/api/dto"
	"Prism/internal/pkg/analytics"
	"Prism/internal/pkg/consts"
	"Prism/internal/pkg/redis"
	"context"
	log "log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const statsCacheTTL = 5 * time.Minute

// StatsService 平台概览与实时指标
type StatsService interface {
	GetPlatformStats(ctx context.Context) (*dto.PlatformStatsDTO, error)
	GetRealtimeStats(ctx context.Context) (*dto.RealtimeStatsDTO, error)
}

type statsServiceImpl struct {
	noteSvc NoteService

	mu  sync.Mutex
	rng *rand.Rand
}

func NewStatsService(noteSvc NoteService, rng *rand.Rand) StatsService {
	return &statsServiceImpl{noteSvc: noteSvc, rng: rng}
}

// GetPlatformStats 平台概览，快照缓存 5 分钟
func (s *statsServiceImpl) GetPlatformStats(ctx context.Context) (*dto.PlatformStatsDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.PlatformStatsKey); err == nil && cached != "" {
		var stats dto.PlatformStatsDTO
		if err = json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	overview, err := s.overview(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.PlatformStatsDTO{}
	if err = copier.Copy(stats, overview); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err = redis.SetWithExpiration(ctx, consts.PlatformStatsKey, data, statsCacheTTL); err != nil {
			log.WarnContext(ctx, "failed to cache platform stats", "err", err)
		}
	}
	return stats, nil
}

// GetRealtimeStats 由平台概览派生的瞬时指标，每次调用重新抖动
func (s *statsServiceImpl) GetRealtimeStats(ctx context.Context) (*dto.RealtimeStatsDTO, error) {
	overview, err := s.overview(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.mu.Lock()
	realtime := analytics.BuildRealtime(overview, now, s.rng)
	s.mu.Unlock()

	return &dto.RealtimeStatsDTO{
		OnlineUsers:    realtime.OnlineUsers,
		PostsPerMinute: realtime.PostsPerMinute,
		Interactions:   realtime.Interactions,
		HotCategory:    realtime.HotCategory,
		GeneratedAt:    realtime.GeneratedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *statsServiceImpl) overview(ctx context.Context) (*analytics.PlatformStat, error) {
	notes, err := s.noteSvc.LoadNotes(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoData
	}
	return analytics.PlatformOverview(notes, time.Now()), nil
}
