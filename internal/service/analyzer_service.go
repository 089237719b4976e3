package service

import (
	"fmt"
	"pattern_master_backend/internal/model"
	"strings"
)

// 启发式复杂度权重：行数、循环、条件线性组合后截断到1.0
const (
	lineWeight      = 0.1
	loopWeight      = 0.2
	conditionWeight = 0.15

	// 分级阈值：>0.7为high，>0.4为medium，其余为low
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// AnalyzeComplexityHeuristic 模型不可用时的确定性回退分析。
// 纯函数，任何输入都不会失败；空代码得分0.0、等级low，
// ai_confidence恒为0.0以标记结果非模型产出。
func AnalyzeComplexityHeuristic(code string) model.ComplexityResult {
	if strings.TrimSpace(code) == "" {
		return model.ComplexityResult{
			ComplexityScore: 0.0,
			ComplexityLevel: model.ComplexityLow,
			AIConfidence:    0.0,
			Suggestions:     FallbackSuggestions(),
		}
	}

	lines := strings.Count(code, "\n") + 1
	loops := strings.Count(code, "for") + strings.Count(code, "while")
	conditions := strings.Count(code, "if") + strings.Count(code, "else")

	score := float64(lines)*lineWeight + float64(loops)*loopWeight + float64(conditions)*conditionWeight
	if score > 1.0 {
		score = 1.0
	}

	return model.ComplexityResult{
		ComplexityScore: score,
		ComplexityLevel: ClassifyComplexity(score),
		AIConfidence:    0.0,
		Suggestions:     FallbackSuggestions(),
	}
}

func ClassifyComplexity(score float64) string {
	switch {
	case score > highThreshold:
		return model.ComplexityHigh
	case score > mediumThreshold:
		return model.ComplexityMedium
	default:
		return model.ComplexityLow
	}
}

// FallbackExplanation 无模型时的通用讲解文本
func FallbackExplanation(patternName string) string {
	return fmt.Sprintf("This %s pattern uses nested loops to create a visual pattern. "+
		"The outer loop controls the rows, while the inner loop controls the columns. "+
		"Each iteration prints characters to form the desired shape.", patternName)
}

func FallbackSuggestions() []string {
	return []string{
		"Keep functions small and focused",
		"Use meaningful variable names",
		"Add comments for complex logic",
	}
}

// FallbackImprovements 无模型时的通用改进建议
func FallbackImprovements() []string {
	return []string{
		"Add comments to explain the logic",
		"Use descriptive variable names",
		"Consider breaking down complex functions",
		"Add error handling where appropriate",
	}
}
