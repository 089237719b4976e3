package model

import (
	"time"
)

// ComplexityLevel 由阈值划分的三档复杂度
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// ComplexityResult 代码复杂度分析结果，不直接落库
// ai_confidence为0.0表示结果来自启发式回退而非模型
// swagger:model ComplexityResult
type ComplexityResult struct {
	ComplexityScore float64  `json:"complexity_score"` // [0,1]
	ComplexityLevel string   `json:"complexity_level"` // low/medium/high
	AIConfidence    float64  `json:"ai_confidence"`
	Suggestions     []string `json:"suggestions,omitempty"`
}

// CodeAnalysis 模型或启发式分析的持久化记录
type CodeAnalysis struct {
	BaseModel
	UserID          string     `gorm:"size:36;index;not null" json:"user_id"`
	PatternID       uint       `gorm:"index;not null" json:"pattern_id"`
	AnalysisType    string     `gorm:"size:30;not null" json:"analysis_type"`
	ComplexityScore float64    `json:"complexity_score"`
	ComplexityLevel string     `gorm:"size:10" json:"complexity_level"`
	AIConfidence    float64    `json:"ai_confidence"`
	Explanation     string     `gorm:"type:text" json:"explanation"`
	Suggestions     StringList `gorm:"type:json" json:"suggestions"`
	ModelUsed       string     `gorm:"size:100" json:"model_used"`
	AnalyzedAt      time.Time  `json:"analyzed_at"`
}

func (CodeAnalysis) TableName() string {
	return "code_analyses"
}
