package dto

import "time"

// UserResponse is the public view of a user. The encrypted credential is
// never included.
type UserResponse struct {
	ID            string     `json:"id"`
	BrokerAccount string     `json:"broker_account"`
	Server        string     `json:"server"`
	Broker        string     `json:"broker"`
	AccountType   string     `json:"account_type"`
	Balance       float64    `json:"balance"`
	Equity        float64    `json:"equity"`
	Currency      string     `json:"currency"`
	LastLogin     *time.Time `json:"last_login"`
}

// AccountInfoResponse is the live account snapshot returned by the connect
// and account endpoints.
type AccountInfoResponse struct {
	UserID        string  `json:"user_id"`
	BrokerAccount string  `json:"broker_account"`
	Server        string  `json:"server"`
	Balance       float64 `json:"balance"`
	Equity        float64 `json:"equity"`
	Margin        float64 `json:"margin"`
	FreeMargin    float64 `json:"free_margin"`
	Currency      string  `json:"currency"`
	Token         string  `json:"token,omitempty"`
}
