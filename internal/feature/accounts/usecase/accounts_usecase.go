package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kanairy_backend/internal/feature/accounts/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and fills in its ID.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by its document ID.
	// Returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByBrokerAccount retrieves the user bound to a broker login and
	// server. Returns ErrUserNotFound when no such user exists.
	FindByBrokerAccount(ctx context.Context, brokerAccount, server string) (*entity.User, error)

	// UpdateBalances stores a fresh balance/equity snapshot for the user.
	UpdateBalances(ctx context.Context, id string, balance, equity float64, lastLogin time.Time) error
}

// BrokerGateway abstracts the MetaAPI integration.
type BrokerGateway interface {
	// ConnectAccount registers and deploys the broker account, returning
	// live account information once connected.
	ConnectAccount(ctx context.Context, login, password, server, platform string) (entity.AccountInfo, error)

	// AccountInformation returns the current account state.
	AccountInformation(ctx context.Context, login string) (entity.AccountInfo, error)
}

// CredentialCipher encrypts broker passwords for storage.
type CredentialCipher interface {
	Encrypt(plaintext string) (entity.EncryptedCredential, error)
	Decrypt(cred entity.EncryptedCredential) (string, error)
}

// TokenGenerator issues API tokens for connected users.
type TokenGenerator interface {
	GenerateToken(userID string) (string, error)
}

// ConnectParams carries the broker credentials submitted at connect time.
type ConnectParams struct {
	Login       string
	Password    string
	Server      string
	Broker      string
	AccountType string
	Platform    string
}

// ConnectResult is the outcome of a successful broker connection.
type ConnectResult struct {
	User  *entity.User
	Info  entity.AccountInfo
	Token string
}

type accountsUsecase struct {
	users  UserRepository
	broker BrokerGateway
	cipher CredentialCipher
	tokens TokenGenerator
}

// NewAccountsUsecase creates a new accounts usecase. broker may be nil when
// no MetaAPI token is configured; broker-dependent operations then fail with
// ErrBrokerNotConfigured.
func NewAccountsUsecase(users UserRepository, broker BrokerGateway, cipher CredentialCipher, tokens TokenGenerator) *accountsUsecase {
	return &accountsUsecase{
		users:  users,
		broker: broker,
		cipher: cipher,
		tokens: tokens,
	}
}

// ConnectBroker connects a broker account via MetaAPI, creating the user on
// first contact. For a returning user the stored password is decrypted and
// used; if decryption fails the freshly submitted password wins.
func (u *accountsUsecase) ConnectBroker(ctx context.Context, p ConnectParams) (*ConnectResult, error) {
	if u.broker == nil {
		return nil, ErrBrokerNotConfigured
	}

	if p.Broker == "" {
		p.Broker = "mt5"
	}
	if p.AccountType == "" {
		p.AccountType = "demo"
	}
	if p.Platform == "" {
		p.Platform = "mt5"
	}

	password := p.Password

	user, err := u.users.FindByBrokerAccount(ctx, p.Login, p.Server)
	switch {
	case err == nil:
		slog.Info("existing user found", "user_id", user.ID, "login", p.Login)
		if stored, derr := u.cipher.Decrypt(user.Credential); derr == nil {
			password = stored
		} else {
			slog.Warn("could not decrypt stored password, using submitted one", "user_id", user.ID, "error", derr)
		}
	case errors.Is(err, ErrUserNotFound):
		cred, cerr := u.cipher.Encrypt(p.Password)
		if cerr != nil {
			return nil, fmt.Errorf("encrypt credential: %w", cerr)
		}
		now := time.Now().UTC()
		user = &entity.User{
			BrokerAccount: p.Login,
			Credential:    cred,
			Server:        p.Server,
			Broker:        p.Broker,
			AccountType:   p.AccountType,
			Currency:      "USD",
			LastLogin:     &now,
		}
		if cerr := u.users.Create(ctx, user); cerr != nil {
			return nil, fmt.Errorf("create user: %w", cerr)
		}
		slog.Info("new user created", "user_id", user.ID, "login", p.Login)
	default:
		return nil, err
	}

	info, err := u.broker.ConnectAccount(ctx, p.Login, password, p.Server, p.Platform)
	if err != nil {
		return nil, fmt.Errorf("broker connection failed: %w", err)
	}

	now := time.Now().UTC()
	if err := u.users.UpdateBalances(ctx, user.ID, info.Balance, info.Equity, now); err != nil {
		return nil, fmt.Errorf("update balances: %w", err)
	}
	user.Balance = info.Balance
	user.Equity = info.Equity
	user.Currency = info.Currency
	user.LastLogin = &now

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &ConnectResult{User: user, Info: info, Token: token}, nil
}

// GetUser retrieves a user by ID.
func (u *accountsUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// GetAccountInfo returns live account information for a user. When the
// broker cannot be reached the last stored snapshot is returned instead, so
// the dashboard keeps working through broker outages.
func (u *accountsUsecase) GetAccountInfo(ctx context.Context, userID string) (*entity.User, entity.AccountInfo, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, entity.AccountInfo{}, err
	}
	if u.broker == nil {
		return nil, entity.AccountInfo{}, ErrBrokerNotConfigured
	}

	info, err := u.broker.AccountInformation(ctx, user.BrokerAccount)
	if err != nil {
		slog.Warn("broker unavailable, serving cached account data", "user_id", userID, "error", err)
		return user, entity.AccountInfo{
			Balance:  user.Balance,
			Equity:   user.Equity,
			Currency: user.Currency,
		}, nil
	}

	if err := u.users.UpdateBalances(ctx, userID, info.Balance, info.Equity, time.Now().UTC()); err != nil {
		slog.Warn("failed to store balance snapshot", "user_id", userID, "error", err)
	}
	return user, info, nil
}
