package dto

import (
	"time"

	"kanairy_backend/internal/feature/trading/domain/entity"
)

// TradeResponse is the response of POST /api/trade.
type TradeResponse struct {
	Success          bool    `json:"success"`
	PositionID       string  `json:"position_id"`
	BrokerOrderID    string  `json:"broker_order_id,omitempty"`
	BrokerPositionID string  `json:"broker_position_id,omitempty"`
	Symbol           string  `json:"symbol"`
	Volume           float64 `json:"volume"`
	Price            float64 `json:"price"`
	Message          string  `json:"message"`
}

// PositionResponse is one position in the positions list.
type PositionResponse struct {
	ID           string   `json:"id"`
	Symbol       string   `json:"symbol"`
	Type         string   `json:"type"`
	Volume       float64  `json:"volume"`
	OpenPrice    float64  `json:"open_price"`
	CurrentPrice float64  `json:"current_price"`
	StopLoss     *float64 `json:"stop_loss,omitempty"`
	TakeProfit   *float64 `json:"take_profit,omitempty"`
	Profit       float64  `json:"profit"`
	Status       string   `json:"status"`
	OpenedAt     string   `json:"opened_at"`
	ClosedAt     string   `json:"closed_at,omitempty"`
}

// PositionListResponse is the response of GET /api/users/:id/positions.
type PositionListResponse struct {
	Positions []PositionResponse `json:"positions"`
	Count     int                `json:"count"`
}

// CloseResponse is the response of POST /api/positions/:id/close.
type CloseResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	PositionID string  `json:"position_id"`
	Profit     float64 `json:"profit"`
}

// PositionFromEntity converts a position entity into its response form.
func PositionFromEntity(p *entity.Position) PositionResponse {
	r := PositionResponse{
		ID:           p.ID,
		Symbol:       p.Symbol,
		Type:         p.Type,
		Volume:       p.Volume,
		OpenPrice:    p.OpenPrice,
		CurrentPrice: p.CurrentPrice,
		StopLoss:     p.StopLoss,
		TakeProfit:   p.TakeProfit,
		Profit:       p.Profit,
		Status:       p.Status,
		OpenedAt:     p.OpenedAt.UTC().Format(time.RFC3339),
	}
	if p.ClosedAt != nil {
		r.ClosedAt = p.ClosedAt.UTC().Format(time.RFC3339)
	}
	return r
}

// PositionsFromEntities converts position entities into a list response.
func PositionsFromEntities(positions []entity.Position) PositionListResponse {
	out := make([]PositionResponse, 0, len(positions))
	for i := range positions {
		out = append(out, PositionFromEntity(&positions[i]))
	}
	return PositionListResponse{Positions: out, Count: len(out)}
}
