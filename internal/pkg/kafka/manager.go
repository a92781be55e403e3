package kafka

import (
	"Prism/internal/api/config"
	"Prism/internal/pkg/analytics"
	"Prism/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	noteConsumer sarama.ConsumerGroup
	noteHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	noteRepo repository.NoteRepo,
	classifier *analytics.Classifier,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	noteConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaNoteConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	noteHandler := NewNotesHandler(noteRepo, classifier)

	return &ConsumerManager{
		noteConsumer: noteConsumer,
		noteHandler:  noteHandler,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaNoteConsumer.Topic
		log.Info("Note consumer started", "topic", topic)
		for {
			if err := m.noteConsumer.Consume(ctx, []string{topic}, m.noteHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.noteConsumer.Close(); err != nil {
		log.Error("Failed to close note consumer", "err", err)
	}

	return nil
}
