package wire

import (
	"Prism/internal/api"
	"Prism/internal/api/config"
	"Prism/internal/api/handler"
	"Prism/internal/job"
	"Prism/internal/pkg/analytics"
	"Prism/internal/pkg/cron"
	"Prism/internal/pkg/dataset"
	"Prism/internal/pkg/kafka"
	"Prism/internal/pkg/llm"
	"Prism/internal/pkg/mockgen"
	"Prism/internal/pkg/mongo"
	"Prism/internal/repository"
	"Prism/internal/service"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronManager  *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	noteRepo := repository.NewNoteRepository(db)
	auditRepo := mongo.NewLLMAuditRepo(mongoDB)

	classifier := analytics.NewClassifier()
	loader := dataset.NewLoader(cfg.Dataset)
	generator := mockgen.NewGenerator(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	noteService := service.NewNoteService(loader, noteRepo, classifier, generator)
	trendService := service.NewTrendService(noteService, classifier, rng)
	insightService := service.NewInsightService(noteService, classifier, rng)
	statsService := service.NewStatsService(noteService, rng)
	assistantService := service.NewAssistantService(llm.NewCreator(), noteService, auditRepo, cfg.LLM.TextModel, time.Duration(cfg.LLM.Timeout)*time.Second)

	handlers := &api.HandlersGroup{
		TrendHandler:     handler.NewTrendHandler(trendService),
		InsightHandler:   handler.NewInsightHandler(insightService),
		AssistantHandler: handler.NewAssistantHandler(assistantService),
		StatsHandler:     handler.NewStatsHandler(statsService),
		WSHandler:        handler.NewWsHandler(statsService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, noteRepo, classifier)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewSnapshotJob(noteService, insightService))

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronManager:  cronMgr,
	}, nil
}
