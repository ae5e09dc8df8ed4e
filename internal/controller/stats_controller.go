package controller

import (
	"practicetime_backend/internal/service"
	"practicetime_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// Questions godoc
// @Summary Question statistics
// @Description Counts by grade, difficulty, type and grade/topic/subtopic triples
// @Tags stats
// @Produce  json
// @Success 200 {object} util.Response{data=service.QuestionStats}
// @Router /api/stats/questions [get]
func (c *StatsController) Questions(ctx *gin.Context) {
	stats, err := c.StatsService.QuestionStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
