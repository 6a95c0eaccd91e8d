// Package dto holds wire types for the MetaAPI cloud REST endpoints.
package dto

// Account is a trading account registered with the provisioning API.
type Account struct {
	ID               string `json:"_id"`
	Login            string `json:"login"`
	Server           string `json:"server"`
	Name             string `json:"name"`
	State            string `json:"state"`            // e.g. "DEPLOYED"
	ConnectionStatus string `json:"connectionStatus"` // e.g. "CONNECTED"
	Platform         string `json:"platform"`
	Region           string `json:"region"`
}

// CreateAccountRequest registers a new account with the provisioning API.
type CreateAccountRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Login       string `json:"login"`
	Password    string `json:"password"`
	Server      string `json:"server"`
	Platform    string `json:"platform"`
	Application string `json:"application"`
	Magic       int    `json:"magic"`
	Region      string `json:"region"`
}

// CreateAccountResponse carries the identifier of a newly created account.
type CreateAccountResponse struct {
	ID string `json:"id"`
}

// AccountInformation mirrors the client API account-information response.
type AccountInformation struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	Margin     float64 `json:"margin"`
	FreeMargin float64 `json:"freeMargin"`
	Currency   string  `json:"currency"`
	Leverage   int     `json:"leverage"`
	Name       string  `json:"name"`
}

// TradeRequest is the body of a client API trade call.
type TradeRequest struct {
	ActionType string   `json:"actionType"`
	Symbol     string   `json:"symbol,omitempty"`
	Volume     float64  `json:"volume,omitempty"`
	StopLoss   *float64 `json:"stopLoss,omitempty"`
	TakeProfit *float64 `json:"takeProfit,omitempty"`
	PositionID string   `json:"positionId,omitempty"`
}

// TradeResponse is the broker's reply to a trade call.
type TradeResponse struct {
	NumericCode int     `json:"numericCode"`
	StringCode  string  `json:"stringCode"`
	Message     string  `json:"message"`
	OrderID     string  `json:"orderId"`
	PositionID  string  `json:"positionId"`
	OpenPrice   float64 `json:"openPrice"`
	Price       float64 `json:"price"`
	Profit      float64 `json:"profit"`
	ClosePrice  float64 `json:"closePrice"`
}

// Position is a live position from the client API.
type Position struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Type         string  `json:"type"`
	Volume       float64 `json:"volume"`
	OpenPrice    float64 `json:"openPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	Profit       float64 `json:"profit"`
}
