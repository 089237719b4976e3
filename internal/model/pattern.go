package model

// Difficulty 图案难度等级
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Pattern 图案题目参考数据，种子化后只读
// swagger:model Pattern
type Pattern struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Category       string     `gorm:"size:50;index;not null" json:"category"`
	Difficulty     Difficulty `gorm:"type:varchar(20);index;not null" json:"difficulty"`
	Description    string     `gorm:"type:text" json:"description"`
	Preview        StringList `gorm:"type:json" json:"preview"`
	Rows           int        `gorm:"not null" json:"rows"`
	Popularity     int        `gorm:"not null" json:"popularity"`      // 0-100
	CompletionRate int        `gorm:"not null" json:"completion_rate"` // 0-100
	Formula        string     `gorm:"size:255" json:"formula"`
	Loops          int        `gorm:"not null" json:"loops"`
	Conditions     int        `gorm:"not null" json:"conditions"`
}

func (Pattern) TableName() string {
	return "patterns"
}
