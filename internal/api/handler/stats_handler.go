package handler

import (
	"Prism/internal/pkg/response"
	"Prism/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsSvc: statsSvc,
	}
}

// GetPlatformStats 平台概览
func (s *StatsHandler) GetPlatformStats(c *gin.Context) {
	stats, err := s.statsSvc.GetPlatformStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetRealtimeStats 实时指标单次快照
func (s *StatsHandler) GetRealtimeStats(c *gin.Context) {
	stats, err := s.statsSvc.GetRealtimeStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
