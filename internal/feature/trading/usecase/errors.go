// Package usecase implements the business logic for the trading feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPositionNotFound is returned when a position cannot be found, or
	// does not belong to the requesting user.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionAlreadyClosed is returned when closing a position twice.
	ErrPositionAlreadyClosed = errors.New("position already closed")

	// ErrInvalidSide is returned when the trade type is not buy or sell.
	ErrInvalidSide = errors.New("trade type must be buy or sell")

	// ErrInvalidVolume is returned when the requested volume is not positive.
	ErrInvalidVolume = errors.New("volume must be positive")

	// ErrBrokerNotConfigured is returned when no MetaAPI token was
	// configured.
	ErrBrokerNotConfigured = errors.New("broker gateway not configured")
)
