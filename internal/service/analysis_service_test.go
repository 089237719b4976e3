package service

import (
	"context"
	"net/http"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/internal/repository"
	"pattern_master_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnalysisService(t *testing.T, ai *AIService) (*AnalysisService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAnalysisService(
		ai,
		NewPatternService(repository.NewPatternRepository(db)),
		repository.NewAnalysisRepository(db),
	)
	return svc, db
}

func TestAnalyzeHeuristicWhenModelUnavailable(t *testing.T) {
	ai := NewAIService(config.AIConfig{TimeoutSeconds: 1}, nil)
	svc, db := newAnalysisService(t, ai)

	code := "n = 4\nfor i in range(n):\n    for j in range(n):\n        pass"
	result, err := svc.Analyze(context.Background(), "u1", 1, code, "general")
	require.NoError(t, err)

	assert.False(t, result.AIPowered)
	assert.Equal(t, "heuristic", result.ModelUsed)
	assert.InDelta(t, 0.8, result.ComplexityAnalysis.ComplexityScore, 1e-9)
	assert.Equal(t, 0.0, result.ComplexityAnalysis.AIConfidence)
	assert.Equal(t, "Square Pattern (Solid)", result.Pattern.Name)
	assert.NotEmpty(t, result.Explanation)
	assert.NotEmpty(t, result.Improvements)

	// 分析结果落库
	var records []model.CodeAnalysis
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "u1", records[0].UserID)
	assert.Equal(t, "heuristic", records[0].ModelUsed)
	assert.Equal(t, model.ComplexityHigh, records[0].ComplexityLevel)
}

func TestAnalyzeUsesModelWhenConfigured(t *testing.T) {
	ai := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `{"complexity_score": 0.25, "complexity_level": "low", "confidence": 0.95, "suggestions": []}`)
	})
	svc, _ := newAnalysisService(t, ai)

	result, err := svc.Analyze(context.Background(), "u1", 2, "print('*')", "general")
	require.NoError(t, err)

	assert.True(t, result.AIPowered)
	assert.Equal(t, "test-model", result.ModelUsed)
	assert.InDelta(t, 0.25, result.ComplexityAnalysis.ComplexityScore, 1e-9)
}

func TestAnalyzeUnknownPattern(t *testing.T) {
	ai := NewAIService(config.AIConfig{TimeoutSeconds: 1}, nil)
	svc, _ := newAnalysisService(t, ai)

	_, err := svc.Analyze(context.Background(), "u1", 9999, "x = 1", "general")
	assert.ErrorIs(t, err, util.ErrPatternNotFound)
}

func TestHistoryReturnsOwnRecords(t *testing.T) {
	ai := NewAIService(config.AIConfig{TimeoutSeconds: 1}, nil)
	svc, _ := newAnalysisService(t, ai)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, "u1", 1, "x = 1", "general")
	require.NoError(t, err)
	_, err = svc.Analyze(ctx, "u1", 2, "y = 2", "general")
	require.NoError(t, err)
	_, err = svc.Analyze(ctx, "u2", 1, "z = 3", "general")
	require.NoError(t, err)

	records, err := svc.History("u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "u1", r.UserID)
	}
}
