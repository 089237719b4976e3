package controller

import (
	"pattern_master_backend/internal/service"
	"pattern_master_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExecutionController struct {
	ExecutionService *service.ExecutionService
}

func NewExecutionController(executionService *service.ExecutionService) *ExecutionController {
	return &ExecutionController{ExecutionService: executionService}
}

type ExecuteCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
}

// @Summary 模拟执行代码
// @Description 不真正运行用户代码，仅做输出还原，支持python/javascript/java
// @Tags 执行
// @Accept json
// @Produce json
// @Param body body ExecuteCodeRequest true "代码"
// @Success 200 {object} util.Response
// @Router /execute-code [post]
func (c *ExecutionController) ExecuteCode(ctx *gin.Context) {
	var req ExecuteCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	util.Success(ctx, c.ExecutionService.Execute(req.Code, req.Language))
}
