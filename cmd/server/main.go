package main

import (
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"kanairy_backend/internal/app/di"
	"kanairy_backend/internal/app/router"
	accountsadapters "kanairy_backend/internal/feature/accounts/adapters"
	accountshandler "kanairy_backend/internal/feature/accounts/transport/handler"
	accountsusecase "kanairy_backend/internal/feature/accounts/usecase"
	newshandler "kanairy_backend/internal/feature/news/transport/handler"
	newsusecase "kanairy_backend/internal/feature/news/usecase"
	ordershandler "kanairy_backend/internal/feature/orders/transport/handler"
	ordersusecase "kanairy_backend/internal/feature/orders/usecase"
	tradingadapters "kanairy_backend/internal/feature/trading/adapters"
	tradinghandler "kanairy_backend/internal/feature/trading/transport/handler"
	tradingusecase "kanairy_backend/internal/feature/trading/usecase"
	"kanairy_backend/internal/platform/config"
	infradb "kanairy_backend/internal/platform/db"
	jwtmw "kanairy_backend/internal/platform/jwt"
	infraredis "kanairy_backend/internal/platform/redis"
	"kanairy_backend/internal/platform/secrets"
)

const tokenLifetime = 24 * time.Hour

func main() {
	cfg := config.Load()

	// Document store: Appwrite when real credentials are present,
	// otherwise the local database.
	aw := di.NewAppwriteClient(cfg)
	var db *gorm.DB
	if aw == nil {
		slog.Warn("Appwrite credentials are placeholders, using local storage")
		var err error
		db, err = infradb.Open(cfg)
		if err != nil {
			slog.Error("failed to open local database", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisConfigured() {
		tmp, err := infraredis.NewRedisClient(cfg)
		if err != nil {
			slog.Warn("Redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Broker
	broker := di.NewBroker(cfg)
	if broker == nil {
		slog.Warn("MetaAPI token is not configured, trading endpoints will report the broker as unavailable")
	}

	// Repository
	userRepo := di.NewUserRepository(cfg, aw, db)
	positionRepo := di.NewPositionRepository(cfg, aw, db)
	orderRepo := di.NewOrderRepository(cfg, aw, db)
	articleRepo := di.NewArticleRepository(cfg, aw, db, rdb)

	// Credential encryption and API tokens
	cipher := accountsadapters.NewCredentialCipher(secrets.New(cfg.EncryptionKey))
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		slog.Warn("JWT_SECRET is not set, falling back to the encryption key. Set a strong secret in production.")
		jwtSecret = cfg.EncryptionKey
	}
	tokens := jwtmw.NewGenerator(jwtSecret, tokenLifetime)

	// Usecase
	var accountsBroker accountsusecase.BrokerGateway
	var tradingBroker tradingusecase.BrokerExecutor
	if broker != nil {
		accountsBroker = broker
		tradingBroker = broker
	}
	ordersUC := ordersusecase.NewOrdersUsecase(orderRepo)
	accountsUC := accountsusecase.NewAccountsUsecase(userRepo, accountsBroker, cipher, tokens)
	tradingUC := tradingusecase.NewTradingUsecase(positionRepo, tradingadapters.NewUserDirectory(userRepo), tradingBroker, ordersUC)
	newsUC := newsusecase.NewNewsUsecase(articleRepo)

	// Handler
	systemH := di.NewSystemHandler(cfg, aw, db)
	accountsH := accountshandler.NewAccountsHandler(accountsUC)
	tradingH := tradinghandler.NewTradingHandler(tradingUC)
	ordersH := ordershandler.NewOrdersHandler(ordersUC)
	newsH := newshandler.NewNewsHandler(newsUC)

	r := router.NewRouter(systemH, accountsH, tradingH, ordersH, newsH, jwtSecret)

	slog.Info("starting KanAIRY trading API", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
