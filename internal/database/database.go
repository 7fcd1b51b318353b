package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abhismart8/resume-builder/internal/config"
)

// InitDatabase 使用配置初始化 PostgreSQL 连接，并返回 GORM 数据库实例。
// TranslateError 打开后唯一约束冲突会以 gorm.ErrDuplicatedKey 返回。
func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Migrate 同步表结构。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &EmailVerification{}, &Resume{}, &Template{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// RebuildShareTokenIndex 清理空字符串令牌并重建分享令牌的部分唯一索引。
func RebuildShareTokenIndex(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Resume{}).
			Where("share_link_token = ?", "").
			Updates(map[string]any{"share_link_token": nil, "is_public": false}).Error; err != nil {
			return fmt.Errorf("clear empty share tokens: %w", err)
		}
		if err := tx.Exec("DROP INDEX IF EXISTS idx_resumes_share_link_token").Error; err != nil {
			return fmt.Errorf("drop share token index: %w", err)
		}
		if err := tx.Exec("CREATE UNIQUE INDEX idx_resumes_share_link_token ON resumes (share_link_token) WHERE share_link_token IS NOT NULL").Error; err != nil {
			return fmt.Errorf("create share token index: %w", err)
		}
		return nil
	})
}
