package entity

import "time"

// Article categories.
const (
	CategoryMarket   = "market"
	CategoryForex    = "forex"
	CategoryCrypto   = "crypto"
	CategoryEconomic = "economic"
)

// Article is a market news item shown on the dashboard feed.
type Article struct {
	ID          string
	Title       string
	Content     string
	Category    string
	Source      string
	ImageURL    string
	PublishedAt time.Time
}
