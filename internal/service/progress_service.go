package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/internal/repository"
	"pattern_master_backend/internal/util"
	"pattern_master_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "leaderboard:top"
const leaderboardCacheTTL = time.Minute

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	PatternRepo  *repository.PatternRepository
	DB           *gorm.DB
	Redis        *redis.Client
}

func NewProgressService(progressRepo *repository.ProgressRepository, patternRepo *repository.PatternRepository, db *gorm.DB, rdb *redis.Client) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		PatternRepo:  patternRepo,
		DB:           db,
		Redis:        rdb,
	}
}

// ProgressSubmission 一次图案提交
type ProgressSubmission struct {
	UserID             string  `json:"user_id"`
	PatternID          uint    `json:"pattern_id" binding:"required"`
	ProgressPercentage float64 `json:"progress_percentage"`
	TimeSpent          int     `json:"time_spent"`
	Completed          bool    `json:"completed"`
	Score              float64 `json:"score"`
	Code               string  `json:"code"`
}

func (sub *ProgressSubmission) validate() error {
	if sub.UserID == "" {
		return util.NewValidationError("user_id", "required")
	}
	if sub.ProgressPercentage < 0 || sub.ProgressPercentage > 100 {
		return util.NewValidationError("progress_percentage", "must be within [0,100]")
	}
	if sub.Score < 0 || sub.Score > 1 {
		return util.NewValidationError("score", "must be within [0,1]")
	}
	if sub.TimeSpent < 0 {
		return util.NewValidationError("time_spent", "must be non-negative")
	}
	return nil
}

// SubmitProgress 针对(user,pattern)的读改写合并：
// 首次提交创建attempts=1的行；此后attempts递增、best_score取最大、
// completed只增不减。同一键永远只有一行。
func (s *ProgressService) SubmitProgress(ctx context.Context, sub ProgressSubmission) (*model.UserProgress, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}

	if _, err := s.PatternRepo.FindByID(sub.PatternID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPatternNotFound
		}
		return nil, err
	}

	now := time.Now()
	var progress *model.UserProgress

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.ProgressRepo.FindByUserAndPattern(tx, sub.UserID, sub.PatternID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = &model.UserProgress{
				UserID:             sub.UserID,
				PatternID:          sub.PatternID,
				ProgressPercentage: sub.ProgressPercentage,
				TimeSpent:          sub.TimeSpent,
				Attempts:           1,
				Completed:          sub.Completed,
				BestScore:          sub.Score,
				LastAttemptAt:      now,
				CodeSubmitted:      sub.Code,
			}
			return s.ProgressRepo.Create(tx, progress)
		}
		if err != nil {
			return err
		}

		existing.Attempts++
		existing.ProgressPercentage = sub.ProgressPercentage
		existing.TimeSpent += sub.TimeSpent
		existing.Completed = existing.Completed || sub.Completed
		if sub.Score > existing.BestScore {
			existing.BestScore = sub.Score
		}
		existing.LastAttemptAt = now
		if sub.Code != "" {
			existing.CodeSubmitted = sub.Code
		}

		progress = existing
		return s.ProgressRepo.Save(tx, existing)
	})
	if err != nil {
		return nil, err
	}

	// 追加式的尝试记录；失败不影响进度行
	attempt := &model.PatternAttempt{
		UserID:        sub.UserID,
		PatternID:     sub.PatternID,
		CodeSubmitted: sub.Code,
		Success:       sub.Completed,
		AttemptedAt:   now,
	}
	if err := s.ProgressRepo.CreateAttempt(attempt); err != nil {
		logger.Log.Error("failed to record pattern attempt", zap.Error(err))
	}

	if sub.Completed {
		s.invalidateLeaderboard(ctx)
	}

	return progress, nil
}

// UserProgressReport 某用户的进度行与聚合统计
type UserProgressReport struct {
	UserID            string               `json:"user_id"`
	Progress          []model.UserProgress `json:"progress"`
	TotalAttempts     int                  `json:"total_attempts"`
	PatternsCompleted int                  `json:"patterns_completed"`
	BestScore         float64              `json:"best_score"`
}

func (s *ProgressService) GetUserProgress(userID string, patternID uint) (*UserProgressReport, error) {
	rows, err := s.ProgressRepo.ListByUser(userID, patternID)
	if err != nil {
		return nil, err
	}

	report := &UserProgressReport{
		UserID:   userID,
		Progress: rows,
	}
	for _, row := range rows {
		report.TotalAttempts += row.Attempts
		if row.Completed {
			report.PatternsCompleted++
		}
		if row.BestScore > report.BestScore {
			report.BestScore = row.BestScore
		}
	}
	return report, nil
}

// PatternStatistics 跨用户统计与派生的难度评估
type PatternStatistics struct {
	PatternID            uint    `json:"pattern_id"`
	TotalAttempts        int64   `json:"total_attempts"`
	SuccessRate          float64 `json:"success_rate"`
	AverageTime          float64 `json:"average_time"`
	DifficultyTrend      string  `json:"difficulty_trend"`
	DifficultyAssessment string  `json:"difficulty_assessment"`
}

func (s *ProgressService) GetPatternStatistics(patternID uint) (*PatternStatistics, error) {
	if _, err := s.PatternRepo.FindByID(patternID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPatternNotFound
		}
		return nil, err
	}

	raw, err := s.ProgressRepo.GetPatternStats(patternID)
	if err != nil {
		return nil, err
	}

	stats := &PatternStatistics{
		PatternID:     patternID,
		TotalAttempts: raw.TotalAttempts,
		AverageTime:   raw.AverageTime,
	}
	if raw.TotalAttempts > 0 {
		stats.SuccessRate = float64(raw.Successes) / float64(raw.TotalAttempts)
	}

	if float64(raw.Successes) > float64(raw.TotalAttempts)*0.7 {
		stats.DifficultyTrend = "increasing"
	} else {
		stats.DifficultyTrend = "challenging"
	}

	switch {
	case stats.TotalAttempts == 0:
		stats.DifficultyAssessment = "unknown"
	case stats.SuccessRate < 0.5:
		stats.DifficultyAssessment = "challenging"
	case stats.SuccessRate < 0.8:
		stats.DifficultyAssessment = "moderate"
	default:
		stats.DifficultyAssessment = "easy"
	}

	return stats, nil
}

// GetLeaderboard 完成数排行。结果在redis缓存一分钟，提交完成时失效
func (s *ProgressService) GetLeaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached []repository.LeaderboardEntry
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	entries, err := s.ProgressRepo.GetLeaderboard(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// CountCompleted 某用户完成的图案数，登录用户查看排行榜时附带
func (s *ProgressService) CountCompleted(userID string) (int64, error) {
	return s.ProgressRepo.CountCompleted(userID)
}

func (s *ProgressService) invalidateLeaderboard(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	iter := s.Redis.Scan(ctx, 0, leaderboardCacheKey+":*", 100).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
}
