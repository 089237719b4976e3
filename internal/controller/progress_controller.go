package controller

import (
	"pattern_master_backend/internal/service"
	"pattern_master_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary 提交练习进度
// @Description 首次提交创建记录，再次提交累加尝试次数并保留最高分
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProgressSubmission true "进度数据"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /user/progress [post]
func (c *ProgressController) SubmitProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var sub service.ProgressSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sub.UserID = claims.UserID

	progress, err := c.ProgressService.SubmitProgress(ctx.Request.Context(), sub)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 我的学习进度
// @Description 当前用户全部图案的进度汇总
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param pattern_id query int false "只看某个图案"
// @Success 200 {object} util.Response
// @Router /user/progress [get]
func (c *ProgressController) GetMyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	patternID := util.MustParseUint(ctx.Query("pattern_id"))

	report, err := c.ProgressService.GetUserProgress(claims.UserID, patternID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 指定用户学习进度
// @Description 仅允许查询本人进度
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /user/progress/{userId} [get]
func (c *ProgressController) GetUserProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := ctx.Param("userId")
	if userID != claims.UserID {
		handleServiceError(ctx, util.ErrPermissionDenied)
		return
	}

	report, err := c.ProgressService.GetUserProgress(userID, 0)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 排行榜
// @Description 按完成图案数排序的用户排行，结果缓存1分钟
// @Tags 进度
// @Produce json
// @Param limit query int false "名次数量，默认10"
// @Success 200 {object} util.Response
// @Router /leaderboard [get]
func (c *ProgressController) GetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.ProgressService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	resp := gin.H{
		"leaderboard": entries,
		"total":       len(entries),
	}
	// 登录用户附带自己的完成数
	if claims := util.GetUserFromContext(ctx); claims != nil {
		if completed, err := c.ProgressService.CountCompleted(claims.UserID); err == nil {
			resp["my_completed"] = completed
		}
	}
	util.Success(ctx, resp)
}
