package service

import (
	"context"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/internal/repository"
	"pattern_master_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// AnalysisService 串联模型分析、讲解与落库
type AnalysisService struct {
	AI           *AIService
	PatternSvc   *PatternService
	AnalysisRepo *repository.AnalysisRepository
}

func NewAnalysisService(ai *AIService, patternSvc *PatternService, analysisRepo *repository.AnalysisRepository) *AnalysisService {
	return &AnalysisService{
		AI:           ai,
		PatternSvc:   patternSvc,
		AnalysisRepo: analysisRepo,
	}
}

// EnhancedAnalysis 增强分析响应
type EnhancedAnalysis struct {
	Pattern            *model.Pattern         `json:"pattern"`
	ComplexityAnalysis model.ComplexityResult `json:"complexity_analysis"`
	Explanation        string                 `json:"explanation"`
	Improvements       []string               `json:"improvement_suggestions"`
	AIPowered          bool                   `json:"ai_powered"`
	ModelUsed          string                 `json:"model_used"`
}

// Analyze 模型优先、启发式兜底的完整分析，并将结果持久化。
// 落库失败只记日志，分析结果照常返回。
func (s *AnalysisService) Analyze(ctx context.Context, userID string, patternID uint, userCode string, analysisType string) (*EnhancedAnalysis, error) {
	pattern, err := s.PatternSvc.GetPattern(patternID)
	if err != nil {
		return nil, err
	}

	complexity, aiPowered := s.AI.AnalyzeComplexity(ctx, userCode)
	explanation := s.AI.ExplainCode(ctx, userCode, pattern.Name)
	improvements := s.AI.SuggestImprovements(ctx, userCode)

	modelUsed := "heuristic"
	if aiPowered {
		modelUsed = s.AI.ModelName()
	}

	record := &model.CodeAnalysis{
		UserID:          userID,
		PatternID:       pattern.ID,
		AnalysisType:    analysisType,
		ComplexityScore: complexity.ComplexityScore,
		ComplexityLevel: complexity.ComplexityLevel,
		AIConfidence:    complexity.AIConfidence,
		Explanation:     explanation,
		Suggestions:     model.StringList(improvements),
		ModelUsed:       modelUsed,
		AnalyzedAt:      time.Now(),
	}
	if err := s.AnalysisRepo.Create(record); err != nil {
		logger.Log.Error("failed to persist code analysis", zap.Error(err))
	}

	return &EnhancedAnalysis{
		Pattern:            pattern,
		ComplexityAnalysis: complexity,
		Explanation:        explanation,
		Improvements:       improvements,
		AIPowered:          aiPowered,
		ModelUsed:          modelUsed,
	}, nil
}

// History 用户最近的分析记录
func (s *AnalysisService) History(userID string, limit int) ([]model.CodeAnalysis, error) {
	return s.AnalysisRepo.ListByUser(userID, limit)
}
