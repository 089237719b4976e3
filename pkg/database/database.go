package database

import (
	"fmt"
	"log"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 执行表结构迁移并灌入只读的图案目录
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Pattern{},
		&model.UserProgress{},
		&model.PatternAttempt{},
		&model.CodeAnalysis{},
	)
	if err != nil {
		return err
	}

	return SeedPatterns(db)
}

// SeedPatterns 目录为空时写入内置图案，之后不再变动
func SeedPatterns(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Pattern{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range defaultPatterns() {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func defaultPatterns() []model.Pattern {
	return []model.Pattern{
		{
			ID: 1, Name: "Square Pattern (Solid)", Category: "basic-star", Difficulty: model.DifficultyEasy,
			Description: "A solid square filled with stars",
			Preview:     model.StringList{"****", "****", "****", "****"},
			Rows:        4, Popularity: 95, CompletionRate: 92,
			Formula: "stars = n, spaces = 0", Loops: 2, Conditions: 0,
		},
		{
			ID: 2, Name: "Right Triangle Pattern", Category: "basic-star", Difficulty: model.DifficultyEasy,
			Description: "Stars forming a right triangle",
			Preview:     model.StringList{"*", "**", "***", "****"},
			Rows:        4, Popularity: 98, CompletionRate: 95,
			Formula: "stars = i, spaces = 0", Loops: 2, Conditions: 0,
		},
		{
			ID: 3, Name: "Left Triangle Pattern", Category: "basic-star", Difficulty: model.DifficultyEasy,
			Description: "Stars aligned to the left forming triangle",
			Preview:     model.StringList{"   *", "  **", " ***", "****"},
			Rows:        4, Popularity: 87, CompletionRate: 89,
			Formula: "stars = i, spaces = n-i", Loops: 2, Conditions: 0,
		},
		{
			ID: 4, Name: "Inverted Right Triangle", Category: "basic-star", Difficulty: model.DifficultyEasy,
			Description: "Upside-down right triangle",
			Preview:     model.StringList{"****", "***", "**", "*"},
			Rows:        4, Popularity: 85, CompletionRate: 88,
			Formula: "stars = n-i+1, spaces = 0", Loops: 2, Conditions: 0,
		},
		{
			ID: 5, Name: "Isosceles Triangle", Category: "basic-star", Difficulty: model.DifficultyEasy,
			Description: "Centered triangle with equal sides",
			Preview:     model.StringList{"  *  ", " *** ", "*****"},
			Rows:        3, Popularity: 91, CompletionRate: 90,
			Formula: "stars = 2*i+1, spaces = n-i-1", Loops: 2, Conditions: 0,
		},
		{
			ID: 11, Name: "Hollow Square", Category: "hollow", Difficulty: model.DifficultyMedium,
			Description: "Square with hollow interior",
			Preview:     model.StringList{"****", "*  *", "*  *", "****"},
			Rows:        4, Popularity: 84, CompletionRate: 76,
			Formula: "stars = n (if first/last row/col), spaces = n-2 (middle)", Loops: 2, Conditions: 4,
		},
		{
			ID: 31, Name: "Diamond Pattern (Solid)", Category: "diamond", Difficulty: model.DifficultyMedium,
			Description: "Solid diamond shape",
			Preview:     model.StringList{"  *  ", " *** ", "*****", " *** ", "  *  "},
			Rows:        5, Popularity: 89, CompletionRate: 82,
			Formula: "stars = 2*i+1 (upper), 2*(n-i-1)+1 (lower), spaces = n-i-1", Loops: 2, Conditions: 1,
		},
		{
			ID: 32, Name: "Hollow Diamond", Category: "diamond", Difficulty: model.DifficultyMedium,
			Description: "Diamond with hollow center",
			Preview:     model.StringList{"  *  ", " * * ", "*   *", " * * ", "  *  "},
			Rows:        5, Popularity: 85, CompletionRate: 76,
			Formula: "stars = 1 (if first/last), spaces = n-i-1 + i-1 (middle)", Loops: 2, Conditions: 4,
		},
		{
			ID: 41, Name: "Number Triangle (1,2,3...)", Category: "number", Difficulty: model.DifficultyEasy,
			Description: "Triangle with sequential numbers",
			Preview:     model.StringList{"1", "12", "123", "1234"},
			Rows:        4, Popularity: 92, CompletionRate: 88,
			Formula: "numbers = 1 to i", Loops: 2, Conditions: 0,
		},
		{
			ID: 66, Name: "Butterfly Pattern", Category: "special", Difficulty: model.DifficultyHard,
			Description: "Butterfly wing pattern",
			Preview:     model.StringList{"*    *", "**  **", "******", "**  **", "*    *"},
			Rows:        5, Popularity: 91, CompletionRate: 67,
			Formula: "stars = i+1 (left), 2*(n-i-1) (right), spaces = 2*(n-i-1)", Loops: 2, Conditions: 2,
		},
		{
			ID: 69, Name: "X Pattern (Cross)", Category: "special", Difficulty: model.DifficultyMedium,
			Description: "X or cross pattern",
			Preview:     model.StringList{"*   *", " * * ", "  *  ", " * * ", "*   *"},
			Rows:        5, Popularity: 86, CompletionRate: 78,
			Formula: "stars = 1 (if i==j or i+j==n-1)", Loops: 2, Conditions: 2,
		},
	}
}
