// Package entity defines the domain entities for the accounts feature.
package entity

import "time"

// EncryptedCredential is the stored form of a broker password.
// All three fields are base64 encoded; the triple is produced and consumed
// by the platform secrets cipher.
type EncryptedCredential struct {
	Ciphertext string
	IV         string
	AuthTag    string
}

// User represents a platform user bound to one broker account.
type User struct {
	// ID is the document identifier of the user.
	ID string

	// BrokerAccount is the MT5 login number.
	BrokerAccount string

	// Credential is the encrypted broker password.
	Credential EncryptedCredential

	// Server is the broker server name, e.g. "ICMarketsSC-Demo".
	Server string

	// Broker is the broker platform identifier (currently always "mt5").
	Broker string

	// AccountType is "demo" or "real".
	AccountType string

	Balance  float64
	Equity   float64
	Currency string

	LastLogin *time.Time
}

// AccountInfo is a snapshot of live account state reported by the broker.
type AccountInfo struct {
	Balance    float64
	Equity     float64
	Margin     float64
	FreeMargin float64
	Currency   string
	Leverage   int
	Name       string
}
