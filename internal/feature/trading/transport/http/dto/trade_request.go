package dto

// TradeRequest is the body of POST /api/trade.
type TradeRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	Symbol     string   `json:"symbol" binding:"required"`
	Type       string   `json:"type" binding:"required"`
	Volume     float64  `json:"volume" binding:"required"`
	StopLoss   *float64 `json:"stop_loss"`
	TakeProfit *float64 `json:"take_profit"`
}

// CloseRequest is the body of POST /api/positions/close.
type CloseRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	PositionID string `json:"position_id" binding:"required"`
}
