package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LLMAuditRepo interface {
	SaveAudit(ctx context.Context, audit *LLMAudit) error
	GetRecent(ctx context.Context, kind string, limit int) ([]*LLMAudit, error)
}

type llmAuditRepoImpl struct {
	col *mongo.Collection
}

func NewLLMAuditRepo(db *mongo.Database) LLMAuditRepo {
	return &llmAuditRepoImpl{
		col: db.Collection("llm_audit"),
	}
}

// SaveAudit 将一次 LLM 调用记录存入 MongoDB
func (s *llmAuditRepoImpl) SaveAudit(ctx context.Context, audit *LLMAudit) error {
	_, err := s.col.InsertOne(ctx, audit)
	return err
}

// GetRecent 按时间倒序拉取某类调用的最近记录
func (s *llmAuditRepoImpl) GetRecent(ctx context.Context, kind string, limit int) ([]*LLMAudit, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var audits []*LLMAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, err
	}

	return audits, nil
}
