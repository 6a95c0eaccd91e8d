package dto

import (
	"time"

	"kanairy_backend/internal/feature/orders/domain/entity"
)

// OrderResponse is one order in the order history response.
type OrderResponse struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Type       string  `json:"type"`
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	ExecutedAt string  `json:"executed_at,omitempty"`
}

// OrderListResponse is the response of GET /api/users/:id/orders.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}

// FromEntities converts order entities into an OrderListResponse.
func FromEntities(orders []entity.Order) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		r := OrderResponse{
			ID:        o.ID,
			Symbol:    o.Symbol,
			Type:      o.Type,
			Volume:    o.Volume,
			Price:     o.Price,
			Status:    o.Status,
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if o.ExecutedAt != nil {
			r.ExecutedAt = o.ExecutedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, r)
	}
	return OrderListResponse{Orders: out, Count: len(out)}
}
