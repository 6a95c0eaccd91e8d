package di

import (
	"context"

	"gorm.io/gorm"

	"kanairy_backend/internal/platform/appwrite"
	"kanairy_backend/internal/platform/config"
	platformhandler "kanairy_backend/internal/platform/http/handler"
)

type appwritePinger struct {
	client *appwrite.Client
}

func (p appwritePinger) Ping(ctx context.Context) error {
	return p.client.Health(ctx)
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NewSystemHandler creates the handler for the root, health and status
// endpoints, wired to whichever store is active.
func NewSystemHandler(cfg *config.Config, aw *appwrite.Client, db *gorm.DB) *platformhandler.SystemHandler {
	var (
		pinger platformhandler.StorePinger
		mode   string
	)
	if aw != nil {
		pinger = appwritePinger{client: aw}
		mode = "appwrite"
	} else {
		pinger = gormPinger{db: db}
		mode = "local"
	}
	return platformhandler.NewSystemHandler(pinger, mode, cfg.MetaAPIConfigured(), len(cfg.EncryptionKey))
}
