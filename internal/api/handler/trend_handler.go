package handler

import (
	"Prism/internal/pkg/response"
	"Prism/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TrendHandler struct {
	trendSvc service.TrendService
}

func NewTrendHandler(trendSvc service.TrendService) *TrendHandler {
	return &TrendHandler{
		trendSvc: trendSvc,
	}
}

// GetHotTopics 热门笔记榜单，支持 category 与 limit 查询参数
func (s *TrendHandler) GetHotTopics(c *gin.Context) {
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	topics, err := s.trendSvc.GetHotTopics(c.Request.Context(), category, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

// GetCreationTrends 类目与发布时段趋势，period 为统计窗口天数，0 表示全量
func (s *TrendHandler) GetCreationTrends(c *gin.Context) {
	period, _ := strconv.Atoi(c.DefaultQuery("period", "0"))

	trends, err := s.trendSvc.GetCreationTrends(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trends)
}
