package dataset

import (
	"Prism/internal/api/config"
	"Prism/internal/model"
	"Prism/internal/pkg/minio"
	"context"
	"fmt"
	log "log/slog"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// source 单个候选数据源
type source struct {
	name string
	load func(ctx context.Context) ([]byte, error)
}

// Loader 按固定顺序探测候选数据源：本地文件、MinIO 快照、远端 HTTP。
// 第一个解析出非空笔记集的数据源胜出，单个数据源失败仅记日志。
type Loader struct {
	cfg  config.DatasetConfig
	http *resty.Client
}

func NewLoader(cfg config.DatasetConfig) *Loader {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2)

	return &Loader{cfg: cfg, http: client}
}

func (s *Loader) sources() []source {
	list := make([]source, 0, len(s.cfg.Paths)+2)
	for _, path := range s.cfg.Paths {
		p := path
		list = append(list, source{
			name: "file:" + p,
			load: func(ctx context.Context) ([]byte, error) {
				return os.ReadFile(p)
			},
		})
	}

	if obj := config.Cfg.MinIO.SnapshotObject; obj != "" {
		list = append(list, source{
			name: "minio:" + obj,
			load: func(ctx context.Context) ([]byte, error) {
				return minio.GetObjectBytes(ctx, obj)
			},
		})
	}

	if url := s.cfg.RemoteURL; url != "" {
		list = append(list, source{
			name: "http:" + url,
			load: func(ctx context.Context) ([]byte, error) {
				resp, err := s.http.R().SetContext(ctx).Get(url)
				if err != nil {
					return nil, err
				}
				if resp.IsError() {
					return nil, fmt.Errorf("remote dataset returned status %d", resp.StatusCode())
				}
				return resp.Body(), nil
			},
		})
	}
	return list
}

// Load 依次探测数据源并返回第一个非空结果。
// 全部失败时返回空集而非错误，由上层决定回退策略。
func (s *Loader) Load(ctx context.Context) []*model.Note {
	now := time.Now().UTC()

	for _, src := range s.sources() {
		data, err := src.load(ctx)
		if err != nil {
			log.WarnContext(ctx, "dataset source unavailable", "source", src.name, "err", err)
			continue
		}

		notes, err := ParseNotes(data, now)
		if err != nil {
			log.WarnContext(ctx, "dataset source unparsable", "source", src.name, "err", err)
			continue
		}
		if len(notes) == 0 {
			log.WarnContext(ctx, "dataset source empty", "source", src.name)
			continue
		}

		if s.cfg.Limit > 0 && len(notes) > s.cfg.Limit {
			notes = notes[:s.cfg.Limit]
		}
		log.InfoContext(ctx, "dataset loaded", "source", src.name, "notes", len(notes))
		return notes
	}

	log.WarnContext(ctx, "all dataset sources exhausted")
	return nil
}
