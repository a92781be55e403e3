package repository

import (
	"Prism/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepo interface {
	SaveOrUpdateNotes(ctx context.Context, notes []*model.Note) error
	GetLatestNotes(ctx context.Context, limit int) ([]*model.Note, error)
}

type noteRepoImpl struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepo {
	return &noteRepoImpl{db: db}
}

// SaveOrUpdateNotes 批量 Upsert。主键已存在时刷新互动计数与分类
func (r *noteRepoImpl) SaveOrUpdateNotes(ctx context.Context, notes []*model.Note) error {
	if len(notes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"like_count",
			"comment_count",
			"share_count",
			"view_count",
			"category",
			"updated_at",
		}),
	}).CreateInBatches(notes, 500).Error
}

// GetLatestNotes 按发布时间倒序拉取笔记
func (r *noteRepoImpl) GetLatestNotes(ctx context.Context, limit int) ([]*model.Note, error) {
	notes := make([]*model.Note, 0)
	result := r.db.WithContext(ctx).
		Order("published_at DESC").
		Limit(limit).
		Find(&notes)
	if result.Error != nil {
		return nil, result.Error
	}
	return notes, nil
}
