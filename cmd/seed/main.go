package main

import (
	"Prism/internal/api/config"
	"Prism/internal/pkg/kafka"
	"Prism/internal/pkg/logger"
	"Prism/internal/pkg/minio"
	"Prism/internal/pkg/mockgen"
	"context"
	"flag"
	log "log/slog"
	"os"
	"time"

	"github.com/IBM/sarama"
	json "github.com/goccy/go-json"
)

// 造数工具：生成模拟笔记，写入 JSON 文件或投递到采集 Topic
func main() {
	count := flag.Int("count", 1000, "生成笔记条数")
	seed := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	out := flag.String("out", "", "输出 JSON 文件路径，留空则投递到 Kafka")
	upload := flag.Bool("upload", false, "将生成结果上传为 MinIO 数据集快照")
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	logger.InitLogger()

	notes := mockgen.NewGenerator(*seed).Generate(*count, time.Now())
	log.Info("mock notes generated", "count", len(notes), "seed", *seed)

	if *out != "" || *upload {
		data, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			log.Error("marshal notes error", "err", err)
			panic(err)
		}
		if *out != "" {
			if err = os.WriteFile(*out, data, 0o644); err != nil {
				log.Error("write output file error", "path", *out, "err", err)
				panic(err)
			}
			log.Info("notes written", "path", *out)
		}
		if *upload {
			if err = minio.Init(); err != nil {
				log.Error("init minio error", "err", err)
				panic(err)
			}
			object := config.Cfg.MinIO.SnapshotObject
			if err = minio.PutObjectBytes(context.Background(), object, data, "application/json"); err != nil {
				log.Error("upload snapshot error", "object", object, "err", err)
				panic(err)
			}
			log.Info("snapshot uploaded", "object", object)
		}
		return
	}

	producer, err := kafka.NewSyncProducer(config.Cfg.Kafka)
	if err != nil {
		log.Error("create kafka producer error", "err", err)
		panic(err)
	}
	defer producer.Close()

	topic := config.Cfg.KafkaNoteConsumer.Topic
	sent := 0
	for _, note := range notes {
		payload, err := json.Marshal(note)
		if err != nil {
			log.Error("marshal note error", "id", note.ID, "err", err)
			continue
		}
		msg := &sarama.ProducerMessage{
			Topic: topic,
			Key:   sarama.StringEncoder(note.ID),
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err = producer.SendMessage(msg); err != nil {
			log.Error("send note message error", "id", note.ID, "err", err)
			continue
		}
		sent++
	}
	log.Info("notes published", "topic", topic, "sent", sent)
}
