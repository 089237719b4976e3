package controller

import (
	"errors"
	"pattern_master_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError 将服务层的类型化错误映射为HTTP响应
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPatternNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrProgressNotFound):
		util.NotFound(ctx, err.Error())
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidPassword):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
