// 手动重灌图案目录脚本
//
// 图案目录在首次迁移时自动灌入，此后保持只读。该脚本用于
// 内置目录元数据更新后的整体重灌（先清空patterns表再写入）。
//
// 用法: go run scripts/reseed_patterns.go

package main

import (
	"log"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/pkg/database"
	"pattern_master_backend/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	err = db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(&model.Pattern{}).Error
	if err != nil {
		log.Fatalf("清空图案目录失败: %v", err)
	}

	if err := database.SeedPatterns(db); err != nil {
		log.Fatalf("重灌图案目录失败: %v", err)
	}

	log.Println("图案目录重灌完成")
}
