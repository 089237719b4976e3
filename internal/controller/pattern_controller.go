package controller

import (
	"pattern_master_backend/internal/service"
	"pattern_master_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PatternController struct {
	PatternService  *service.PatternService
	ProgressService *service.ProgressService
}

func NewPatternController(patternService *service.PatternService, progressService *service.ProgressService) *PatternController {
	return &PatternController{
		PatternService:  patternService,
		ProgressService: progressService,
	}
}

// @Summary 图案目录
// @Description 按插入顺序列出图案，支持分类/难度过滤
// @Tags 图案
// @Produce json
// @Param category query string false "分类"
// @Param difficulty query string false "难度 easy/medium/hard"
// @Param limit query int false "数量上限，默认50"
// @Success 200 {object} util.Response
// @Router /patterns [get]
func (c *PatternController) ListPatterns(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	patterns, err := c.PatternService.ListPatterns(
		ctx.Query("category"),
		ctx.Query("difficulty"),
		limit,
	)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, patterns)
}

// @Summary 图案详情
// @Tags 图案
// @Produce json
// @Param id path int true "图案ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /patterns/{id} [get]
func (c *PatternController) GetPattern(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid pattern ID")
		return
	}

	pattern, err := c.PatternService.GetPattern(uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, pattern)
}

// @Summary 图案统计
// @Description 跨用户的尝试数、成功率、平均耗时与难度评估
// @Tags 图案
// @Produce json
// @Param id path int true "图案ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /patterns/{id}/statistics [get]
func (c *PatternController) GetStatistics(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "Invalid pattern ID")
		return
	}

	stats, err := c.ProgressService.GetPatternStatistics(uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
