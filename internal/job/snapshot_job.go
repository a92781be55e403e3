package job

import (
	"Prism/internal/pkg/logger"
	"Prism/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// SnapshotJob 定时刷新笔记归档与用户画像缓存
// 归档失败不阻断画像刷新，两步互相独立
type SnapshotJob struct {
	noteService    service.NoteService
	insightService service.InsightService
}

func NewSnapshotJob(noteService service.NoteService, insightService service.InsightService) *SnapshotJob {
	return &SnapshotJob{
		noteService:    noteService,
		insightService: insightService,
	}
}

func (s *SnapshotJob) Run() {
	traceID := "job-snapshot-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	start := time.Now()
	log.InfoContext(ctx, "SnapshotJob starting")

	if saved, err := s.noteService.RefreshArchive(ctx); err != nil {
		log.ErrorContext(ctx, "refresh note archive error", "err", err)
	} else {
		log.InfoContext(ctx, "note archive refreshed", "saved", saved)
	}

	if err := s.insightService.RefreshInsights(ctx); err != nil {
		log.ErrorContext(ctx, "refresh user insights error", "err", err)
	}

	log.InfoContext(ctx, "SnapshotJob finished", "cost", time.Since(start).String())
}
