package model

import (
	"time"
)

// UserProgress 每个(用户,图案)唯一一行；attempts单调递增，best_score取历史最大值
type UserProgress struct {
	BaseModel
	UserID             string    `gorm:"size:36;not null;uniqueIndex:idx_user_pattern" json:"user_id"`
	PatternID          uint      `gorm:"not null;uniqueIndex:idx_user_pattern;index" json:"pattern_id"`
	ProgressPercentage float64   `gorm:"default:0" json:"progress_percentage"` // 0-100
	TimeSpent          int       `gorm:"default:0" json:"time_spent"`          // 秒
	Attempts           int       `gorm:"default:1" json:"attempts"`
	Completed          bool      `gorm:"default:false" json:"completed"`
	BestScore          float64   `gorm:"default:0" json:"best_score"` // 0.0-1.0
	LastAttemptAt      time.Time `json:"last_attempt_at"`
	CodeSubmitted      string    `gorm:"type:text" json:"code_submitted"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// PatternAttempt 单次提交的追加式记录，用于图案统计
type PatternAttempt struct {
	BaseModel
	UserID        string    `gorm:"size:36;index;not null" json:"user_id"`
	PatternID     uint      `gorm:"index;not null" json:"pattern_id"`
	CodeSubmitted string    `gorm:"type:text" json:"code_submitted"`
	Success       bool      `gorm:"default:false" json:"success"`
	AttemptedAt   time.Time `json:"attempted_at"`
}

func (PatternAttempt) TableName() string {
	return "pattern_attempts"
}
