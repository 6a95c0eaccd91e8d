// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountsadapters "kanairy_backend/internal/feature/accounts/adapters"
	accountsusecase "kanairy_backend/internal/feature/accounts/usecase"
	newsadapters "kanairy_backend/internal/feature/news/adapters"
	newsusecase "kanairy_backend/internal/feature/news/usecase"
	ordersadapters "kanairy_backend/internal/feature/orders/adapters"
	ordersusecase "kanairy_backend/internal/feature/orders/usecase"
	tradingadapters "kanairy_backend/internal/feature/trading/adapters"
	tradingusecase "kanairy_backend/internal/feature/trading/usecase"
	"kanairy_backend/internal/platform/appwrite"
	"kanairy_backend/internal/platform/cache"
	"kanairy_backend/internal/platform/config"
	infrahttp "kanairy_backend/internal/platform/http"
)

const newsCacheTTL = 5 * time.Minute

// NewAppwriteClient creates an Appwrite client from the configuration.
// Returns nil when the Appwrite credentials are placeholders.
func NewAppwriteClient(cfg *config.Config) *appwrite.Client {
	if !cfg.AppwriteConfigured() {
		return nil
	}
	awCfg := appwrite.Config{
		Endpoint:   cfg.AppwriteEndpoint,
		ProjectID:  cfg.AppwriteProjectID,
		APIKey:     cfg.AppwriteAPIKey,
		DatabaseID: cfg.AppwriteDatabaseID,
		Timeout:    15 * time.Second,
	}
	return appwrite.NewClient(awCfg, infrahttp.NewHTTPClient(awCfg.Timeout))
}

// NewUserRepository creates a UserRepository implementation. If Appwrite is
// configured, it returns an Appwrite-backed implementation. Otherwise, it
// falls back to the local database.
func NewUserRepository(cfg *config.Config, aw *appwrite.Client, db *gorm.DB) accountsusecase.UserRepository {
	if aw != nil {
		return accountsadapters.NewUserAppwrite(aw, cfg.UsersCollectionID)
	}
	return accountsadapters.NewUserGorm(db)
}

// NewPositionRepository creates a PositionRepository implementation,
// Appwrite-backed when configured, local otherwise.
func NewPositionRepository(cfg *config.Config, aw *appwrite.Client, db *gorm.DB) tradingusecase.PositionRepository {
	if aw != nil {
		return tradingadapters.NewPositionAppwrite(aw, cfg.PositionsCollectionID)
	}
	return tradingadapters.NewPositionGorm(db)
}

// NewOrderRepository creates an OrderRepository implementation,
// Appwrite-backed when configured, local otherwise.
func NewOrderRepository(cfg *config.Config, aw *appwrite.Client, db *gorm.DB) ordersusecase.OrderRepository {
	if aw != nil {
		return ordersadapters.NewOrderAppwrite(aw, cfg.OrdersCollectionID)
	}
	return ordersadapters.NewOrderGorm(db)
}

// NewArticleRepository creates an ArticleRepository implementation,
// Appwrite-backed when configured, local otherwise. When Redis is available
// the repository is wrapped with a caching decorator.
func NewArticleRepository(cfg *config.Config, aw *appwrite.Client, db *gorm.DB, rdb *redis.Client) newsusecase.ArticleRepository {
	var inner newsusecase.ArticleRepository
	if aw != nil {
		inner = newsadapters.NewNewsAppwrite(aw, cfg.NewsCollectionID)
	} else {
		inner = newsadapters.NewNewsGorm(db)
	}
	if rdb != nil {
		return cache.NewCachingArticleRepository(rdb, newsCacheTTL, inner, "news")
	}
	return inner
}
