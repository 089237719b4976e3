package service

import (
	"pattern_master_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trianglePattern() *model.Pattern {
	return &model.Pattern{
		ID: 2, Name: "Right Triangle Pattern", Difficulty: model.DifficultyEasy,
		Rows: 4, Formula: "stars = i, spaces = 0", Loops: 2, Conditions: 0,
	}
}

func hollowSquarePattern() *model.Pattern {
	return &model.Pattern{
		ID: 11, Name: "Hollow Square", Difficulty: model.DifficultyMedium,
		Rows: 4, Formula: "stars = n (if first/last row/col)", Loops: 2, Conditions: 4,
	}
}

func TestCorrectnessScoreEmptyCode(t *testing.T) {
	assert.Equal(t, 0.0, CorrectnessScore("", trianglePattern()))
}

func TestCorrectnessScoreFullSolution(t *testing.T) {
	code := "n = 4\nfor i in range(n):\n    for j in range(n):\n        if i == 0:\n            print('*')"
	assert.Equal(t, 1.0, CorrectnessScore(code, hollowSquarePattern()))
}

func TestCorrectnessScorePartialSolution(t *testing.T) {
	// 单层循环+输出，但图案需要嵌套循环
	code := "for i in range(4):\n    print('*' * i)"
	assert.InDelta(t, 0.5, CorrectnessScore(code, trianglePattern()), 1e-9)
}

func TestProgressiveHintsStages(t *testing.T) {
	p := trianglePattern()

	noCode := ProgressiveHints(p, "")
	require.Len(t, noCode, 4)
	assert.Contains(t, noCode[0], "n = 4")

	noLoop := ProgressiveHints(p, "print('*')")
	require.NotEmpty(t, noLoop)
	assert.Contains(t, noLoop[0], "for loop")

	oneLoop := ProgressiveHints(p, "for i in range(4): pass")
	require.NotEmpty(t, oneLoop)
	assert.Contains(t, oneLoop[0], "nested loops")

	complete := ProgressiveHints(p, "for i in range(4):\n    for j in range(i): pass")
	require.NotEmpty(t, complete)
	assert.Contains(t, complete[0], "print")
}

func TestGenerateCodeTemplate(t *testing.T) {
	square := &model.Pattern{ID: 1, Name: "Square Pattern (Solid)", Formula: "stars = n"}
	diamond := &model.Pattern{ID: 31, Name: "Diamond Pattern (Solid)", Formula: "stars = 2*i+1"}
	unknown := &model.Pattern{ID: 99, Name: "Mystery Pattern", Formula: "unknown"}

	assert.Contains(t, GenerateCodeTemplate(square, "python"), "for j in range(n)")
	assert.Contains(t, GenerateCodeTemplate(diamond, "python"), "Upper half")
	assert.Contains(t, GenerateCodeTemplate(unknown, "python"), "TODO")

	js := GenerateCodeTemplate(trianglePattern(), "javascript")
	assert.Contains(t, js, "repeat")

	java := GenerateCodeTemplate(trianglePattern(), "java")
	assert.Contains(t, java, "TODO")
}

func TestBuildCodeFeedback(t *testing.T) {
	p := hollowSquarePattern()

	empty := BuildCodeFeedback("", p)
	assert.Contains(t, empty.Feedback, "write some code")
	assert.Equal(t, 0.0, empty.CorrectnessScore)
	assert.NotEmpty(t, empty.Suggestions)
	assert.Len(t, empty.Hints, 4)

	good := BuildCodeFeedback("for i in range(4):\n    for j in range(4):\n        if True:\n            print('*')", p)
	assert.Contains(t, good.Feedback, "nested loops")
	assert.Equal(t, 1.0, good.CorrectnessScore)
}

func TestDetailedExplanation(t *testing.T) {
	text := DetailedExplanation(hollowSquarePattern(), "python")
	assert.Contains(t, text, "Hollow Square")
	assert.Contains(t, text, "4 rows")
	assert.Contains(t, text, "python")
}
