package repository

import (
	"pattern_master_backend/internal/model"

	"gorm.io/gorm"
)

type PatternRepository struct {
	DB *gorm.DB
}

func NewPatternRepository(db *gorm.DB) *PatternRepository {
	return &PatternRepository{DB: db}
}

func (r *PatternRepository) FindByID(id uint) (*model.Pattern, error) {
	var pattern model.Pattern
	err := r.DB.First(&pattern, id).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *PatternRepository) FindByName(name string) (*model.Pattern, error) {
	var pattern model.Pattern
	err := r.DB.Where("LOWER(name) = LOWER(?)", name).First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

// FindByPartialName 名称模糊匹配，精确查找失败时的兜底
func (r *PatternRepository) FindByPartialName(name string) (*model.Pattern, error) {
	var pattern model.Pattern
	err := r.DB.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

// List 按插入顺序（主键）枚举，支持可选的分类/难度过滤
func (r *PatternRepository) List(category string, difficulty string, limit int) ([]model.Pattern, error) {
	query := r.DB.Model(&model.Pattern{}).Order("id")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var patterns []model.Pattern
	if err := query.Find(&patterns).Error; err != nil {
		return nil, err
	}
	return patterns, nil
}
