package service

import (
	"errors"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/internal/repository"
	"pattern_master_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatternService(t *testing.T) *PatternService {
	t.Helper()
	db := newTestDB(t)
	return NewPatternService(repository.NewPatternRepository(db))
}

func TestGetPatternSeeded(t *testing.T) {
	svc := newPatternService(t)

	pattern, err := svc.GetPattern(1)
	require.NoError(t, err)
	assert.Equal(t, "Square Pattern (Solid)", pattern.Name)
	assert.Equal(t, model.DifficultyEasy, pattern.Difficulty)
	assert.Equal(t, model.StringList{"****", "****", "****", "****"}, pattern.Preview)
}

func TestGetPatternNotFound(t *testing.T) {
	svc := newPatternService(t)

	_, err := svc.GetPattern(9999)
	assert.ErrorIs(t, err, util.ErrPatternNotFound)
}

func TestGetPatternByName(t *testing.T) {
	svc := newPatternService(t)

	exact, err := svc.GetPatternByName("Hollow Square")
	require.NoError(t, err)
	assert.Equal(t, uint(11), exact.ID)

	partial, err := svc.GetPatternByName("butterfly")
	require.NoError(t, err)
	assert.Equal(t, uint(66), partial.ID)

	_, err = svc.GetPatternByName("nonexistent shape")
	assert.ErrorIs(t, err, util.ErrPatternNotFound)
}

func TestListPatternsFilters(t *testing.T) {
	svc := newPatternService(t)

	all, err := svc.ListPatterns("", "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 11)

	// 目录按ID升序
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}

	diamonds, err := svc.ListPatterns("diamond", "", 0)
	require.NoError(t, err)
	assert.Len(t, diamonds, 2)

	hard, err := svc.ListPatterns("", "hard", 0)
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, "Butterfly Pattern", hard[0].Name)

	limited, err := svc.ListPatterns("", "", 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestAnalyzeUnknownTypeRejected(t *testing.T) {
	svc := newPatternService(t)
	pattern, err := svc.GetPattern(1)
	require.NoError(t, err)

	_, err = svc.Analyze(pattern, "spectral", "")
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
}

func TestAnalyzeVisual(t *testing.T) {
	svc := newPatternService(t)
	diamond, err := svc.GetPattern(31)
	require.NoError(t, err)

	analysis, err := svc.Analyze(diamond, AnalysisVisual, "")
	require.NoError(t, err)
	assert.Equal(t, AnalysisVisual, analysis.AnalysisType)

	visual, ok := analysis.Results.(VisualAnalysis)
	require.True(t, ok)
	assert.Equal(t, 5, visual.Rows)
	assert.Equal(t, 5, visual.Columns)
	assert.Equal(t, "symmetric", visual.Symmetry)
	assert.Greater(t, visual.Density, 0.0)
	assert.LessOrEqual(t, visual.Density, 1.0)
}

func TestAnalyzeMathematical(t *testing.T) {
	svc := newPatternService(t)
	triangle, err := svc.GetPattern(2)
	require.NoError(t, err)

	analysis, err := svc.Analyze(triangle, AnalysisMathematical, "")
	require.NoError(t, err)

	math, ok := analysis.Results.(MathematicalAnalysis)
	require.True(t, ok)
	assert.Equal(t, "O(n)", math.Complexity)
	assert.Equal(t, "increasing", math.GrowthPattern)
	assert.Equal(t, 2, math.Loops)
}

func TestAnalyzeImplementation(t *testing.T) {
	svc := newPatternService(t)
	pattern, err := svc.GetPattern(1)
	require.NoError(t, err)

	empty, err := svc.Analyze(pattern, AnalysisImplementation, "")
	require.NoError(t, err)
	impl := empty.Results.(ImplementationAnalysis)
	assert.Equal(t, "needs_improvement", impl.CodeStructure)

	good, err := svc.Analyze(pattern, AnalysisImplementation, "for i in range(4): pass")
	require.NoError(t, err)
	impl = good.Results.(ImplementationAnalysis)
	assert.Equal(t, "good", impl.CodeStructure)
	assert.Equal(t, "correct", impl.LoopStructure)
}

func TestDifficultyComplexityScore(t *testing.T) {
	easy := &model.Pattern{Difficulty: model.DifficultyEasy, Loops: 2, Conditions: 0}
	assert.InDelta(t, 0.5, DifficultyComplexityScore(easy), 1e-9)

	medium := &model.Pattern{Difficulty: model.DifficultyMedium, Loops: 2, Conditions: 2}
	assert.InDelta(t, 0.9, DifficultyComplexityScore(medium), 1e-9)

	hard := &model.Pattern{Difficulty: model.DifficultyHard, Loops: 2, Conditions: 4}
	assert.Equal(t, 1.0, DifficultyComplexityScore(hard))
}

func TestGetPatternMapsRepoError(t *testing.T) {
	svc := newPatternService(t)

	_, err := svc.GetPattern(9999)
	assert.False(t, errors.Is(err, util.ErrUserNotFound))
	assert.ErrorIs(t, err, util.ErrPatternNotFound)
}
