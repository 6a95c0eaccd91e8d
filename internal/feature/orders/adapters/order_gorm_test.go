package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanairy_backend/internal/feature/orders/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&OrderModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func executedOrder(userID, symbol string, at time.Time) *entity.Order {
	return &entity.Order{
		UserID:     userID,
		Symbol:     symbol,
		Type:       "buy",
		Volume:     0.1,
		Price:      1.1,
		Status:     entity.StatusExecuted,
		CreatedAt:  at,
		ExecutedAt: &at,
	}
}

func TestOrderGorm_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderGorm(db)
	ctx := context.Background()

	older := executedOrder("user-1", "EURUSD", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, older))
	newer := executedOrder("user-1", "XAUUSD", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.ListByUser(ctx, "user-1", entity.StatusExecuted)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "XAUUSD", got[0].Symbol, "orders must be newest first")
}

func TestOrderGorm_ListFiltersStatusAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderGorm(db)
	ctx := context.Background()

	executed := executedOrder("user-1", "EURUSD", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, executed))

	pending := executedOrder("user-1", "GBPUSD", time.Now().UTC())
	pending.Status = entity.StatusPending
	require.NoError(t, repo.Create(ctx, pending))

	other := executedOrder("user-2", "USDJPY", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.ListByUser(ctx, "user-1", entity.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GBPUSD", got[0].Symbol)
}
