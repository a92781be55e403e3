package service

import (
	"Prism/internal/model"
	"Prism/internal/pkg/analytics"
	"Prism/internal/pkg/consts"
	"Prism/internal/pkg/dataset"
	"Prism/internal/repository"
	"context"
	log "log/slog"
	"sync"
	"time"
)

const fallbackGenerateCount = 1000

// NoteGenerator 数据源全部失效时的兜底造数器
type NoteGenerator interface {
	Generate(n int, now time.Time) []*model.Note
}

// NoteService 笔记数据入口。外部数据源、MySQL 归档、兜底造数器逐级回退。
type NoteService interface {
	LoadNotes(ctx context.Context) ([]*model.Note, error)
	RefreshArchive(ctx context.Context) (int, error)
}

type noteServiceImpl struct {
	loader     *dataset.Loader
	repo       repository.NoteRepo
	classifier *analytics.Classifier
	fallback   NoteGenerator

	mu       sync.RWMutex
	cached   []*model.Note
	cachedAt time.Time
}

// cacheTTL 内存缓存有效期，数据集本身是静态快照，无需频繁重读
const cacheTTL = 5 * time.Minute

func NewNoteService(loader *dataset.Loader, repo repository.NoteRepo, classifier *analytics.Classifier, fallback NoteGenerator) NoteService {
	return &noteServiceImpl{
		loader:     loader,
		repo:       repo,
		classifier: classifier,
		fallback:   fallback,
	}
}

// LoadNotes 返回当前笔记全集。
// 探测顺序：内存缓存、外部数据源、MySQL 归档、兜底造数器。
func (s *noteServiceImpl) LoadNotes(ctx context.Context) ([]*model.Note, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.cachedAt) < cacheTTL {
		notes := s.cached
		s.mu.RUnlock()
		return notes, nil
	}
	s.mu.RUnlock()

	notes := s.loader.Load(ctx)

	if len(notes) == 0 && s.repo != nil {
		archived, err := s.repo.GetLatestNotes(ctx, consts.DefaultNoteLimit)
		if err != nil {
			log.WarnContext(ctx, "note archive unavailable", "err", err)
		} else if len(archived) > 0 {
			log.InfoContext(ctx, "notes loaded from archive", "notes", len(archived))
			notes = archived
		}
	}

	if len(notes) == 0 {
		if s.fallback == nil {
			return nil, ErrNoData
		}
		notes = s.fallback.Generate(fallbackGenerateCount, time.Now())
		log.WarnContext(ctx, "all note sources empty, generated fallback dataset", "notes", len(notes))
	}

	s.classifier.ClassifyAll(notes)

	s.mu.Lock()
	s.cached = notes
	s.cachedAt = time.Now()
	s.mu.Unlock()
	return notes, nil
}

// RefreshArchive 重新拉取数据源并同步到 MySQL 归档，返回写入条数
func (s *noteServiceImpl) RefreshArchive(ctx context.Context) (int, error) {
	notes := s.loader.Load(ctx)
	if len(notes) == 0 {
		return 0, ErrNoData
	}
	s.classifier.ClassifyAll(notes)

	if s.repo != nil {
		if err := s.repo.SaveOrUpdateNotes(ctx, notes); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	s.cached = notes
	s.cachedAt = time.Now()
	s.mu.Unlock()
	return len(notes), nil
}
