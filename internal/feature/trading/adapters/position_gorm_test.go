package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanairy_backend/internal/feature/trading/domain/entity"
	"kanairy_backend/internal/feature/trading/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&PositionModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func openPosition(userID, symbol string) *entity.Position {
	return &entity.Position{
		UserID:       userID,
		Symbol:       symbol,
		Type:         "Buy",
		Volume:       0.1,
		OpenPrice:    1.1000,
		CurrentPrice: 1.1000,
		Status:       entity.StatusOpen,
		OpenedAt:     time.Now().UTC(),
	}
}

func TestPositionGorm_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionGorm(db)
	ctx := context.Background()

	pos := openPosition("user-1", "EURUSD")
	require.NoError(t, repo.Create(ctx, pos))
	require.NotEmpty(t, pos.ID)

	got, err := repo.FindByID(ctx, pos.ID)
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", got.Symbol)
	assert.Equal(t, entity.StatusOpen, got.Status)
}

func TestPositionGorm_FindMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionGorm(db)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrPositionNotFound)
}

func TestPositionGorm_ListByUserFiltersStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionGorm(db)
	ctx := context.Background()

	open := openPosition("user-1", "EURUSD")
	require.NoError(t, repo.Create(ctx, open))

	closed := openPosition("user-1", "GBPUSD")
	closed.Status = entity.StatusClosed
	require.NoError(t, repo.Create(ctx, closed))

	other := openPosition("user-2", "USDJPY")
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.ListByUser(ctx, "user-1", entity.StatusOpen)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "EURUSD", got[0].Symbol)

	all, err := repo.ListByUser(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPositionGorm_MarkClosed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionGorm(db)
	ctx := context.Background()

	pos := openPosition("user-1", "EURUSD")
	require.NoError(t, repo.Create(ctx, pos))

	closedAt := time.Now().UTC()
	require.NoError(t, repo.MarkClosed(ctx, pos.ID, 1.1050, 50.0, closedAt))

	got, err := repo.FindByID(ctx, pos.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, got.Status)
	assert.Equal(t, 1.1050, got.CurrentPrice)
	assert.Equal(t, 50.0, got.Profit)
	require.NotNil(t, got.ClosedAt)

	assert.ErrorIs(t, repo.MarkClosed(ctx, "missing", 1, 1, closedAt), usecase.ErrPositionNotFound)
}

func TestPositionGorm_UpdateQuote(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionGorm(db)
	ctx := context.Background()

	pos := openPosition("user-1", "EURUSD")
	require.NoError(t, repo.Create(ctx, pos))

	require.NoError(t, repo.UpdateQuote(ctx, pos.ID, 1.1020, 20.0))

	got, err := repo.FindByID(ctx, pos.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.1020, got.CurrentPrice)
	assert.Equal(t, 20.0, got.Profit)
}
