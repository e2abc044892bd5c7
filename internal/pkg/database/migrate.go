package database

import (
	"Inkstone/internal/model"
	"context"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// AutoMigrate 按依赖顺序同步表结构
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.BlogPost{},
		&model.MediaFile{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.InfoContext(ctx, "applied content schema migrations")
	return nil
}
