package kafka

import (
	"Prism/internal/model"
	"Prism/internal/pkg/analytics"
	"Prism/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// NotesHandler 采集通道笔记消费者：归一化、补分类、落库
type NotesHandler struct {
	noteRepo   repository.NoteRepo
	classifier *analytics.Classifier
}

func NewNotesHandler(noteRepo repository.NoteRepo, classifier *analytics.Classifier) *NotesHandler {
	return &NotesHandler{
		noteRepo:   noteRepo,
		classifier: classifier,
	}
}

func (s *NotesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("note consumer setup")
	return nil
}

func (s *NotesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("note consumer cleanup")
	return nil
}

func (s *NotesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-note consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-note process batch error", "err", err)
		return err
	}
	log.Info("topic-note consume claim end")
	return nil
}

func (s *NotesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	raw, err := ToRawNote(msg)
	if err != nil {
		// 脏消息无法通过重试修复，记录后跳过
		log.WarnContext(ctx, "drop malformed note message", "offset", msg.Offset, "err", err)
		return nil
	}

	note := raw.Normalize(time.Now())
	if note.Title == "" && note.Content == "" {
		log.WarnContext(ctx, "drop empty note message", "offset", msg.Offset)
		return nil
	}

	if note.Category == "" {
		note.Category = s.classifier.Classify(note)
	}

	if err = s.noteRepo.SaveOrUpdateNotes(ctx, []*model.Note{note}); err != nil {
		return errors.Wrap(err, "save note from claim")
	}
	return nil
}
