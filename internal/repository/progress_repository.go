package repository

import (
	"pattern_master_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndPattern(tx *gorm.DB, userID string, patternID uint) (*model.UserProgress, error) {
	if tx == nil {
		tx = r.DB
	}
	var progress model.UserProgress
	err := tx.Where("user_id = ? AND pattern_id = ?", userID, patternID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Create(tx *gorm.DB, progress *model.UserProgress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Create(progress).Error
}

func (r *ProgressRepository) Save(tx *gorm.DB, progress *model.UserProgress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(progress).Error
}

// ListByUser 按最近提交时间倒序；patternID为0时返回全部图案的进度
func (r *ProgressRepository) ListByUser(userID string, patternID uint) ([]model.UserProgress, error) {
	query := r.DB.Where("user_id = ?", userID)
	if patternID > 0 {
		query = query.Where("pattern_id = ?", patternID)
	}

	var rows []model.UserProgress
	if err := query.Order("last_attempt_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProgressRepository) CreateAttempt(attempt *model.PatternAttempt) error {
	return r.DB.Create(attempt).Error
}

// PatternStats 某图案跨用户聚合：总尝试数、成功数、平均耗时
type PatternStats struct {
	TotalAttempts int64   `json:"total_attempts"`
	Successes     int64   `json:"successes"`
	AverageTime   float64 `json:"average_time"`
}

func (r *ProgressRepository) GetPatternStats(patternID uint) (*PatternStats, error) {
	var stats PatternStats

	err := r.DB.Model(&model.PatternAttempt{}).
		Where("pattern_id = ?", patternID).
		Count(&stats.TotalAttempts).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&model.PatternAttempt{}).
		Where("pattern_id = ? AND success = ?", patternID, true).
		Count(&stats.Successes).Error
	if err != nil {
		return nil, err
	}

	if stats.TotalAttempts > 0 {
		var avg *float64
		err = r.DB.Model(&model.UserProgress{}).
			Where("pattern_id = ?", patternID).
			Select("AVG(time_spent)").
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		if avg != nil {
			stats.AverageTime = *avg
		}
	}

	return &stats, nil
}

// LeaderboardEntry 按完成图案数排名的一行
type LeaderboardEntry struct {
	UserID            string `json:"user_id"`
	PatternsCompleted int    `json:"patterns_completed"`
	TotalTime         int    `json:"total_time"`
}

func (r *ProgressRepository) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.DB.Model(&model.UserProgress{}).
		Select("user_id, COUNT(*) AS patterns_completed, SUM(time_spent) AS total_time").
		Where("completed = ?", true).
		Group("user_id").
		Order("patterns_completed DESC, total_time ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountCompleted 某用户已完成的图案数，用于排行榜分值
func (r *ProgressRepository) CountCompleted(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
