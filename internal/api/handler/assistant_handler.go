package handler

import (
	"Prism/internal/api/dto"
	"Prism/internal/pkg/response"
	"Prism/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	assistantSvc service.AssistantService
}

func NewAssistantHandler(assistantSvc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantSvc: assistantSvc,
	}
}

// GenerateTitles 爆款标题生成
func (s *AssistantHandler) GenerateTitles(c *gin.Context) {
	var req dto.TitleRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	titles, err := s.assistantSvc.GenerateTitles(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, titles)
}

// GenerateIdeas 选题建议生成
func (s *AssistantHandler) GenerateIdeas(c *gin.Context) {
	var req dto.IdeaRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ideas, err := s.assistantSvc.GenerateIdeas(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ideas)
}

// GetKeywords 类目关键词推荐
func (s *AssistantHandler) GetKeywords(c *gin.Context) {
	category := c.Query("category")

	keywords, err := s.assistantSvc.GetKeywords(c.Request.Context(), category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, keywords)
}

// GetAudits 最近的生成调用审计
func (s *AssistantHandler) GetAudits(c *gin.Context) {
	kind := c.Query("kind")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	audits, err := s.assistantSvc.GetAudits(c.Request.Context(), kind, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, audits)
}
