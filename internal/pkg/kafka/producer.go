package kafka

import (
	"Prism/internal/api/config"

	"github.com/IBM/sarama"
)

// NewSyncProducer 构建同步生产者，供造数与数据回放工具使用
func NewSyncProducer(kafkaCfg config.KafkaConfig) (sarama.SyncProducer, error) {
	c := newSaramaConfig(kafkaCfg)
	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	return sarama.NewSyncProducer(kafkaCfg.Brokers, c)
}
