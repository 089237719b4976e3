package repository

import (
	"pattern_master_backend/internal/model"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

func (r *AnalysisRepository) Create(analysis *model.CodeAnalysis) error {
	return r.DB.Create(analysis).Error
}

func (r *AnalysisRepository) ListByUser(userID string, limit int) ([]model.CodeAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []model.CodeAnalysis
	err := r.DB.Where("user_id = ?", userID).
		Order("analyzed_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
