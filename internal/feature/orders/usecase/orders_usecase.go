package usecase

import (
	"context"
	"time"

	"kanairy_backend/internal/feature/orders/domain/entity"
)

// OrderRepository abstracts the order history store.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	ListByUser(ctx context.Context, userID, status string) ([]entity.Order, error)
}

// OrdersUsecase provides order history operations.
type OrdersUsecase struct {
	orders OrderRepository
}

// NewOrdersUsecase creates a new OrdersUsecase.
func NewOrdersUsecase(orders OrderRepository) *OrdersUsecase {
	return &OrdersUsecase{orders: orders}
}

// RecordExecution stores an executed order for the user's history.
func (u *OrdersUsecase) RecordExecution(ctx context.Context, userID, symbol, side string, volume, price float64, executedAt time.Time) error {
	o := &entity.Order{
		UserID:     userID,
		Symbol:     symbol,
		Type:       side,
		Volume:     volume,
		Price:      price,
		Status:     entity.StatusExecuted,
		CreatedAt:  executedAt,
		ExecutedAt: &executedAt,
	}
	return u.orders.Create(ctx, o)
}

// ListOrders returns the user's orders filtered by status. An empty status
// defaults to pending, which is what the order panel shows first.
func (u *OrdersUsecase) ListOrders(ctx context.Context, userID, status string) ([]entity.Order, error) {
	if status == "" {
		status = entity.StatusPending
	}
	return u.orders.ListByUser(ctx, userID, status)
}
