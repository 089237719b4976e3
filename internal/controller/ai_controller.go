package controller

import (
	"pattern_master_backend/internal/service"
	"pattern_master_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	PatternService  *service.PatternService
	AnalysisService *service.AnalysisService
	ChatService     *service.ChatService
}

func NewAIController(patternService *service.PatternService, analysisService *service.AnalysisService, chatService *service.ChatService) *AIController {
	return &AIController{
		PatternService:  patternService,
		AnalysisService: analysisService,
		ChatService:     chatService,
	}
}

type AnalyzeRequest struct {
	PatternID    uint   `json:"pattern_id" binding:"required"`
	UserCode     string `json:"user_code"`
	AnalysisType string `json:"analysis_type"`
}

// @Summary 图案分析
// @Description 按visual/mathematical/logical/implementation四种视角分析图案
// @Tags AI
// @Accept json
// @Produce json
// @Param body body AnalyzeRequest true "分析请求"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /ai/analyze [post]
func (c *AIController) Analyze(ctx *gin.Context) {
	var req AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.AnalysisType == "" {
		req.AnalysisType = service.AnalysisVisual
	}

	pattern, err := c.PatternService.GetPattern(req.PatternID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	analysis, err := c.PatternService.Analyze(pattern, req.AnalysisType, req.UserCode)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, analysis)
}

type CodeFeedbackRequest struct {
	PatternID uint   `json:"pattern_id" binding:"required"`
	UserCode  string `json:"user_code"`
	Language  string `json:"language"`
}

// @Summary 代码点评
// @Description 结构检查、建议、正确性打分与渐进式提示
// @Tags AI
// @Accept json
// @Produce json
// @Param body body CodeFeedbackRequest true "点评请求"
// @Success 200 {object} util.Response
// @Router /ai/code-feedback [post]
func (c *AIController) CodeFeedback(ctx *gin.Context) {
	var req CodeFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pattern, err := c.PatternService.GetPattern(req.PatternID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, service.BuildCodeFeedback(req.UserCode, pattern))
}

type GenerateCodeRequest struct {
	PatternID uint   `json:"pattern_id" binding:"required"`
	Language  string `json:"language"`
}

// @Summary 生成参考代码
// @Tags AI
// @Accept json
// @Produce json
// @Param body body GenerateCodeRequest true "生成请求"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /ai/generate-code [post]
func (c *AIController) GenerateCode(ctx *gin.Context) {
	var req GenerateCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	pattern, err := c.PatternService.GetPattern(req.PatternID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"generated_code": service.GenerateCodeTemplate(pattern, req.Language),
		"pattern":        pattern,
		"language":       req.Language,
	})
}

type GenerateDetailedCodeRequest struct {
	PatternName string `json:"pattern_name" binding:"required"`
	Language    string `json:"language"`
}

// @Summary 生成带讲解的参考代码
// @Description 按图案名称（支持模糊匹配）生成代码与分步讲解
// @Tags AI
// @Accept json
// @Produce json
// @Param body body GenerateDetailedCodeRequest true "生成请求"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /ai/generate-detailed-code [post]
func (c *AIController) GenerateDetailedCode(ctx *gin.Context) {
	var req GenerateDetailedCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	pattern, err := c.PatternService.GetPatternByName(req.PatternName)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"pattern":        pattern.Name,
		"language":       req.Language,
		"generated_code": service.GenerateCodeTemplate(pattern, req.Language),
		"explanation":    service.DetailedExplanation(pattern, req.Language),
		"difficulty":     pattern.Difficulty,
		"complexity":     service.DifficultyComplexityScore(pattern),
	})
}

type CodeExplanationRequest struct {
	Code        string `json:"code" binding:"required"`
	PatternName string `json:"pattern_name" binding:"required"`
}

// @Summary 代码讲解
// @Description 模型生成讲解，模型不可用时返回固定讲解文案
// @Tags AI
// @Accept json
// @Produce json
// @Param body body CodeExplanationRequest true "讲解请求"
// @Success 200 {object} util.Response
// @Router /ai/code-explanation [post]
func (c *AIController) CodeExplanation(ctx *gin.Context) {
	var req CodeExplanationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	explanation := c.AnalysisService.AI.ExplainCode(ctx.Request.Context(), req.Code, req.PatternName)
	util.Success(ctx, gin.H{
		"explanation":  explanation,
		"pattern_name": req.PatternName,
	})
}

// @Summary 增强分析
// @Description 模型复杂度分析+讲解+改进建议，结果落库；模型不可用自动降级为启发式
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnalyzeRequest true "分析请求"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /ai/enhanced-analysis [post]
func (c *AIController) EnhancedAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.AnalysisType == "" {
		req.AnalysisType = "general"
	}

	result, err := c.AnalysisService.Analyze(ctx.Request.Context(), claims.UserID, req.PatternID, req.UserCode, req.AnalysisType)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 分析历史
// @Description 当前用户最近的代码分析记录
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Param limit query int false "数量上限，默认20"
// @Success 200 {object} util.Response
// @Router /ai/analysis-history [get]
func (c *AIController) AnalysisHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	records, err := c.AnalysisService.History(claims.UserID, limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
}

// @Summary 教学答疑
// @Description AI助教问答；模型不可用时返回内置回答，不报错
// @Tags AI
// @Accept json
// @Produce json
// @Param body body ChatRequest true "提问"
// @Success 200 {object} util.Response
// @Router /ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, aiPowered := c.ChatService.Reply(ctx.Request.Context(), req.Message, req.Context)
	util.Success(ctx, gin.H{
		"response":   reply,
		"context":    req.Context,
		"ai_powered": aiPowered,
	})
}
