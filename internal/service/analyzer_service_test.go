package service

import (
	"pattern_master_backend/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeComplexityHeuristicEmptyCode(t *testing.T) {
	for _, code := range []string{"", "   ", "\n\t\n"} {
		result := AnalyzeComplexityHeuristic(code)
		assert.Equal(t, 0.0, result.ComplexityScore)
		assert.Equal(t, model.ComplexityLow, result.ComplexityLevel)
		assert.Equal(t, 0.0, result.AIConfidence)
		assert.NotEmpty(t, result.Suggestions)
	}
}

func TestAnalyzeComplexityHeuristicNestedLoops(t *testing.T) {
	// 4行、2个循环、0个条件: 4*0.1 + 2*0.2 = 0.8
	code := "n = 4\nfor i in range(n):\n    for j in range(n):\n        pass"

	result := AnalyzeComplexityHeuristic(code)
	require.InDelta(t, 0.8, result.ComplexityScore, 1e-9)
	assert.Equal(t, model.ComplexityHigh, result.ComplexityLevel)
	assert.Equal(t, 0.0, result.AIConfidence)
}

func TestAnalyzeComplexityHeuristicClampedAtOne(t *testing.T) {
	code := strings.Repeat("for x in range(10):\n", 20)

	result := AnalyzeComplexityHeuristic(code)
	assert.Equal(t, 1.0, result.ComplexityScore)
	assert.Equal(t, model.ComplexityHigh, result.ComplexityLevel)
}

func TestAnalyzeComplexityHeuristicScoreInRange(t *testing.T) {
	samples := []string{
		"x = 1",
		"print('hi')",
		"for i in range(3):\n    if i > 1:\n        print(i)",
		strings.Repeat("if a:\n    pass\n", 50),
	}
	for _, code := range samples {
		result := AnalyzeComplexityHeuristic(code)
		assert.GreaterOrEqual(t, result.ComplexityScore, 0.0)
		assert.LessOrEqual(t, result.ComplexityScore, 1.0)
		assert.Equal(t, 0.0, result.AIConfidence)
	}
}

func TestAnalyzeComplexityHeuristicMonotonic(t *testing.T) {
	code := "x = 1"
	prev := AnalyzeComplexityHeuristic(code).ComplexityScore

	// 逐步叠加循环行，分数只增不减
	for i := 0; i < 6; i++ {
		code += "\nfor j in range(3):"
		score := AnalyzeComplexityHeuristic(code).ComplexityScore
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestClassifyComplexity(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.0, model.ComplexityLow},
		{0.4, model.ComplexityLow},
		{0.41, model.ComplexityMedium},
		{0.7, model.ComplexityMedium},
		{0.71, model.ComplexityHigh},
		{1.0, model.ComplexityHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyComplexity(c.score), "score %v", c.score)
	}
}
