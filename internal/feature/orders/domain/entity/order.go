package entity

import "time"

// Order statuses.
const (
	StatusPending  = "pending"
	StatusExecuted = "executed"
	StatusCanceled = "canceled"
)

// Order is an order record kept for the order history view.
type Order struct {
	ID         string
	UserID     string
	Symbol     string
	Type       string
	Volume     float64
	Price      float64
	Status     string
	CreatedAt  time.Time
	ExecutedAt *time.Time
}
