// Package dto defines the HTTP request/response shapes for the accounts
// feature.
package dto

// ConnectRequest is the body of POST /api/users/connect.
type ConnectRequest struct {
	Login       string `json:"login" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Server      string `json:"server" binding:"required"`
	Broker      string `json:"broker"`
	AccountType string `json:"account_type"`
	Platform    string `json:"platform"`
}
