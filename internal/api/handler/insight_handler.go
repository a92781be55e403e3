package handler

import (
	"Prism/internal/pkg/response"
	"Prism/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightSvc service.InsightService
}

func NewInsightHandler(insightSvc service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightSvc: insightSvc,
	}
}

// GetUserInsights 受众画像洞察
func (s *InsightHandler) GetUserInsights(c *gin.Context) {
	insights, err := s.insightSvc.GetUserInsights(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insights)
}
