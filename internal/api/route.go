package api

import (
	"Prism/internal/api/middleware"
	"Prism/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		topicGroup := apiGroup.Group("/topics")
		{
			topicGroup.GET("/hot", group.TrendHandler.GetHotTopics)
		}

		apiGroup.GET("/trends", group.TrendHandler.GetCreationTrends)

		insightGroup := apiGroup.Group("/insights")
		{
			insightGroup.GET("/users", group.InsightHandler.GetUserInsights)
		}

		assistantGroup := apiGroup.Group("/assistant")
		{
			assistantGroup.POST("/titles", group.AssistantHandler.GenerateTitles)
			assistantGroup.POST("/ideas", group.AssistantHandler.GenerateIdeas)
			assistantGroup.GET("/keywords", group.AssistantHandler.GetKeywords)
			assistantGroup.GET("/audits", group.AssistantHandler.GetAudits)
		}

		statsGroup := apiGroup.Group("/stats")
		{
			statsGroup.GET("/platform", group.StatsHandler.GetPlatformStats)
			statsGroup.GET("/realtime", group.StatsHandler.GetRealtimeStats)
			statsGroup.GET("/live", group.WSHandler.Connect)
		}
	}

	return r
}
