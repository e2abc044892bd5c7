// Package dbtest opens a migrated in-memory SQLite database for package tests.
package dbtest

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/database"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New 返回一个独立的内存数据库，测试结束时关闭
func New(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试使用独立的共享缓存库；单连接保证内存库在测试期间存活
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:  "sqlite",
		DSN:     dsn,
		MaxIdle: 1,
		MaxOpen: 1,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err = database.AutoMigrate(context.Background(), db); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	return db
}
