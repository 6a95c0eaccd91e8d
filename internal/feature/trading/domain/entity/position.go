// Package entity defines the domain entities for the trading feature.
package entity

import "time"

// Position statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Trade sides accepted by the trade endpoint.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Position is a trade held (or previously held) on the broker account.
type Position struct {
	ID     string
	UserID string

	Symbol string
	// Type is "Buy" or "Sell" as displayed to the user.
	Type   string
	Volume float64

	OpenPrice    float64
	CurrentPrice float64
	StopLoss     *float64
	TakeProfit   *float64
	Profit       float64

	Status string

	// BrokerPositionID ties the document to the position on the broker side.
	BrokerPositionID string

	OpenedAt time.Time
	ClosedAt *time.Time
}

// OrderRequest describes a market order to submit to the broker.
type OrderRequest struct {
	Symbol     string
	Volume     float64
	Side       string // SideBuy or SideSell
	StopLoss   *float64
	TakeProfit *float64
}

// BrokerExecution is the broker's answer to a submitted market order.
type BrokerExecution struct {
	OrderID    string
	PositionID string
	OpenPrice  float64
}

// BrokerClose is the broker's answer to a position close request.
type BrokerClose struct {
	ClosePrice float64
	Profit     float64
}

// BrokerPosition is a live position as reported by the broker, used to
// refresh stored positions.
type BrokerPosition struct {
	ID           string
	Symbol       string
	CurrentPrice float64
	Profit       float64
}
