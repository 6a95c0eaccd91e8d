// Package db opens the local fallback database used when no Appwrite
// credentials are configured.
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountsadapters "kanairy_backend/internal/feature/accounts/adapters"
	newsadapters "kanairy_backend/internal/feature/news/adapters"
	ordersadapters "kanairy_backend/internal/feature/orders/adapters"
	tradingadapters "kanairy_backend/internal/feature/trading/adapters"
	"kanairy_backend/internal/platform/config"
)

// Open connects to the local store selected by LOCAL_DB_DRIVER and runs the
// schema migration. sqlite is the default so a fresh checkout works without
// any external services; postgres is available for self-hosted deployments.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.LocalDBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.LocalDBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.LocalDBDSN)
	default:
		return nil, fmt.Errorf("unsupported LOCAL_DB_DRIVER %q", cfg.LocalDBDriver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := gdb.AutoMigrate(
		&accountsadapters.UserModel{},
		&tradingadapters.PositionModel{},
		&ordersadapters.OrderModel{},
		&newsadapters.ArticleModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return gdb, nil
}
