// Package usecase implements the business logic for the accounts feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or
	// broker account.
	ErrUserNotFound = errors.New("user not found")

	// ErrBrokerNotConfigured is returned when an operation needs the broker
	// gateway but no MetaAPI token was configured.
	ErrBrokerNotConfigured = errors.New("broker gateway not configured")
)
