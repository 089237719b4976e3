package service

import (
	"errors"
	"fmt"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/internal/repository"
	"pattern_master_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

// AnalysisType 图案分析的四个视角
const (
	AnalysisVisual         = "visual"
	AnalysisMathematical   = "mathematical"
	AnalysisLogical        = "logical"
	AnalysisImplementation = "implementation"
)

type PatternService struct {
	PatternRepo *repository.PatternRepository
}

func NewPatternService(patternRepo *repository.PatternRepository) *PatternService {
	return &PatternService{PatternRepo: patternRepo}
}

func (s *PatternService) GetPattern(id uint) (*model.Pattern, error) {
	pattern, err := s.PatternRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPatternNotFound
	}
	return pattern, err
}

// GetPatternByName 精确匹配失败时退回模糊匹配（原接口行为）
func (s *PatternService) GetPatternByName(name string) (*model.Pattern, error) {
	pattern, err := s.PatternRepo.FindByName(name)
	if err == nil {
		return pattern, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pattern, err = s.PatternRepo.FindByPartialName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPatternNotFound
	}
	return pattern, err
}

func (s *PatternService) ListPatterns(category, difficulty string, limit int) ([]model.Pattern, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.PatternRepo.List(category, difficulty, limit)
}

// VisualAnalysis 预览的形状特征
type VisualAnalysis struct {
	Rows           int     `json:"rows"`
	Columns        int     `json:"columns"`
	TotalElements  int     `json:"total_elements"`
	UniqueElements int     `json:"unique_elements"`
	Symmetry       string  `json:"symmetry"`
	Density        float64 `json:"density"`
}

type MathematicalAnalysis struct {
	Formula       string `json:"formula"`
	Complexity    string `json:"complexity"`
	Loops         int    `json:"loops"`
	Conditions    int    `json:"conditions"`
	GrowthPattern string `json:"growth_pattern"`
}

type LogicalAnalysis struct {
	NestedLoops int      `json:"nested_loops"`
	Conditions  int      `json:"conditions"`
	Variables   []string `json:"variables"`
	Approach    string   `json:"approach"`
}

type ImplementationAnalysis struct {
	CodeStructure string `json:"code_structure"`
	VariableUsage string `json:"variable_usage"`
	LoopStructure string `json:"loop_structure"`
}

// PatternAnalysis 分析响应：按类型填充results，附建议与难度分
type PatternAnalysis struct {
	AnalysisType    string      `json:"analysis_type"`
	Results         interface{} `json:"results"`
	Suggestions     []string    `json:"suggestions"`
	ComplexityScore float64     `json:"complexity_score"`
}

func (s *PatternService) Analyze(pattern *model.Pattern, analysisType string, userCode string) (*PatternAnalysis, error) {
	var results interface{}

	switch analysisType {
	case AnalysisVisual:
		results = analyzeVisual(pattern)
	case AnalysisMathematical:
		results = analyzeMathematical(pattern)
	case AnalysisLogical:
		results = analyzeLogical(pattern)
	case AnalysisImplementation:
		results = analyzeImplementation(userCode)
	default:
		return nil, util.NewValidationError("analysis_type", "must be one of visual, mathematical, logical, implementation")
	}

	return &PatternAnalysis{
		AnalysisType:    analysisType,
		Results:         results,
		Suggestions:     analysisSuggestions(pattern, analysisType),
		ComplexityScore: DifficultyComplexityScore(pattern),
	}, nil
}

func analyzeVisual(p *model.Pattern) VisualAnalysis {
	columns := 0
	totalElements := 0
	filled := 0
	uniqueSet := make(map[rune]bool)

	for _, line := range p.Preview {
		if len(line) > columns {
			columns = len(line)
		}
		totalElements += len(line)
		filled += len(strings.ReplaceAll(line, " ", ""))
		for _, r := range line {
			uniqueSet[r] = true
		}
	}

	symmetry := "asymmetric"
	lower := strings.ToLower(p.Name)
	if strings.Contains(lower, "diamond") || strings.Contains(lower, "x") {
		symmetry = "symmetric"
	}

	density := 0.0
	if totalElements > 0 {
		density = float64(filled) / float64(totalElements)
	}

	return VisualAnalysis{
		Rows:           p.Rows,
		Columns:        columns,
		TotalElements:  totalElements,
		UniqueElements: len(uniqueSet),
		Symmetry:       symmetry,
		Density:        density,
	}
}

func analyzeMathematical(p *model.Pattern) MathematicalAnalysis {
	complexity := "O(n³)"
	switch p.Difficulty {
	case model.DifficultyEasy:
		complexity = "O(n)"
	case model.DifficultyMedium:
		complexity = "O(n²)"
	}

	growth := "decreasing"
	if len(p.Preview) > 1 && len(p.Preview[0]) < len(p.Preview[len(p.Preview)-1]) {
		growth = "increasing"
	}

	return MathematicalAnalysis{
		Formula:       p.Formula,
		Complexity:    complexity,
		Loops:         p.Loops,
		Conditions:    p.Conditions,
		GrowthPattern: growth,
	}
}

func analyzeLogical(p *model.Pattern) LogicalAnalysis {
	approach := "complex algorithms"
	switch p.Difficulty {
	case model.DifficultyEasy:
		approach = "direct iteration"
	case model.DifficultyMedium:
		approach = "conditional logic"
	}

	return LogicalAnalysis{
		NestedLoops: p.Loops,
		Conditions:  p.Conditions,
		Variables:   []string{"i", "j", "spaces", "stars"},
		Approach:    approach,
	}
}

func analyzeImplementation(userCode string) ImplementationAnalysis {
	a := ImplementationAnalysis{
		CodeStructure: "needs_improvement",
		VariableUsage: "missing",
		LoopStructure: "incorrect",
	}
	if userCode == "" {
		return a
	}
	if strings.Contains(userCode, "for") {
		a.CodeStructure = "good"
	}
	if strings.Contains(userCode, "i") {
		a.VariableUsage = "appropriate"
	}
	if strings.Contains(userCode, "range") {
		a.LoopStructure = "correct"
	}
	return a
}

func analysisSuggestions(p *model.Pattern, analysisType string) []string {
	switch analysisType {
	case AnalysisVisual:
		return []string{
			"Try to identify the symmetry in this pattern",
			"Count the elements in each row to find the pattern",
			"Notice how the pattern changes from row to row",
		}
	case AnalysisMathematical:
		return []string{
			fmt.Sprintf("Use the formula: %s", p.Formula),
			fmt.Sprintf("This pattern requires %d nested loops", p.Loops),
			"Calculate spaces and stars for each row",
		}
	case AnalysisLogical:
		return []string{
			"Start with the outer loop for rows",
			"Use inner loop for columns",
			"Apply conditions for special cases",
		}
	default:
		return nil
	}
}

// DifficultyComplexityScore 目录元数据推出的难度分：
// 难度基准0.3/0.6/0.9，叠加循环与条件数，截断到1.0
func DifficultyComplexityScore(p *model.Pattern) float64 {
	base := 0.9
	switch p.Difficulty {
	case model.DifficultyEasy:
		base = 0.3
	case model.DifficultyMedium:
		base = 0.6
	}

	score := base + float64(p.Loops)*0.1 + float64(p.Conditions)*0.05
	if score > 1.0 {
		score = 1.0
	}
	return score
}
