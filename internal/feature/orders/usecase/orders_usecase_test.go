package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanairy_backend/internal/feature/orders/domain/entity"
)

type fakeOrderRepo struct {
	orders     []entity.Order
	lastStatus string
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	o.ID = "ord-1"
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID, status string) ([]entity.Order, error) {
	f.lastStatus = status
	return f.orders, nil
}

func TestRecordExecution(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := NewOrdersUsecase(repo)

	at := time.Now().UTC()
	require.NoError(t, uc.RecordExecution(context.Background(), "user-1", "EURUSD", "buy", 0.1, 1.1, at))

	require.Len(t, repo.orders, 1)
	got := repo.orders[0]
	assert.Equal(t, entity.StatusExecuted, got.Status)
	assert.Equal(t, "buy", got.Type)
	require.NotNil(t, got.ExecutedAt)
	assert.Equal(t, at, *got.ExecutedAt)
}

func TestListOrders_DefaultsToPending(t *testing.T) {
	repo := &fakeOrderRepo{}
	uc := NewOrdersUsecase(repo)

	_, err := uc.ListOrders(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, repo.lastStatus)

	_, err = uc.ListOrders(context.Background(), "user-1", entity.StatusExecuted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExecuted, repo.lastStatus)
}
