// Package adapters provides the repository implementations for the accounts
// feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kanairy_backend/internal/feature/accounts/domain/entity"
	"kanairy_backend/internal/feature/accounts/usecase"
	"kanairy_backend/internal/platform/appwrite"
)

// userDoc is the Appwrite document shape of a user. Field names must stay
// stable: documents written by earlier releases use exactly these keys.
type userDoc struct {
	ID                string  `json:"$id,omitempty"`
	BrokerAccount     string  `json:"broker_account"`
	EncryptedPassword string  `json:"encrypted_password"`
	IV                string  `json:"iv"`
	AuthTag           string  `json:"auth_tag"`
	Server            string  `json:"server"`
	Broker            string  `json:"broker"`
	AccountType       string  `json:"account_type"`
	Balance           float64 `json:"balance"`
	Equity            float64 `json:"equity"`
	Currency          string  `json:"currency"`
	LastLogin         string  `json:"last_login,omitempty"`
}

func (d userDoc) toEntity() *entity.User {
	u := &entity.User{
		ID:            d.ID,
		BrokerAccount: d.BrokerAccount,
		Credential: entity.EncryptedCredential{
			Ciphertext: d.EncryptedPassword,
			IV:         d.IV,
			AuthTag:    d.AuthTag,
		},
		Server:      d.Server,
		Broker:      d.Broker,
		AccountType: d.AccountType,
		Balance:     d.Balance,
		Equity:      d.Equity,
		Currency:    d.Currency,
	}
	if d.LastLogin != "" {
		if t, err := time.Parse(time.RFC3339, d.LastLogin); err == nil {
			u.LastLogin = &t
		}
	}
	return u
}

func userDocFromEntity(u *entity.User) userDoc {
	d := userDoc{
		BrokerAccount:     u.BrokerAccount,
		EncryptedPassword: u.Credential.Ciphertext,
		IV:                u.Credential.IV,
		AuthTag:           u.Credential.AuthTag,
		Server:            u.Server,
		Broker:            u.Broker,
		AccountType:       u.AccountType,
		Balance:           u.Balance,
		Equity:            u.Equity,
		Currency:          u.Currency,
	}
	if u.LastLogin != nil {
		d.LastLogin = u.LastLogin.UTC().Format(time.RFC3339)
	}
	return d
}

// userAppwrite implements UserRepository on the Appwrite document store.
type userAppwrite struct {
	client     *appwrite.Client
	collection string
}

// Compile-time check that userAppwrite implements UserRepository.
var _ usecase.UserRepository = (*userAppwrite)(nil)

// NewUserAppwrite creates a UserRepository backed by the given collection.
func NewUserAppwrite(client *appwrite.Client, collection string) *userAppwrite {
	return &userAppwrite{client: client, collection: collection}
}

func (r *userAppwrite) Create(ctx context.Context, u *entity.User) error {
	doc := userDocFromEntity(u)
	var created userDoc
	if err := r.client.CreateDocument(ctx, r.collection, uuid.NewString(), doc, &created); err != nil {
		return err
	}
	u.ID = created.ID
	return nil
}

func (r *userAppwrite) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var doc userDoc
	if err := r.client.GetDocument(ctx, r.collection, id, &doc); err != nil {
		if errors.Is(err, appwrite.ErrNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *userAppwrite) FindByBrokerAccount(ctx context.Context, brokerAccount, server string) (*entity.User, error) {
	var docs []userDoc
	err := r.client.ListDocuments(ctx, r.collection, appwrite.ListOptions{
		Queries: []string{
			appwrite.Equal("broker_account", brokerAccount),
			appwrite.Equal("server", server),
		},
		Limit: 1,
	}, &docs)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return docs[0].toEntity(), nil
}

func (r *userAppwrite) UpdateBalances(ctx context.Context, id string, balance, equity float64, lastLogin time.Time) error {
	data := map[string]any{
		"balance":    balance,
		"equity":     equity,
		"last_login": lastLogin.UTC().Format(time.RFC3339),
	}
	if err := r.client.UpdateDocument(ctx, r.collection, id, data, nil); err != nil {
		if errors.Is(err, appwrite.ErrNotFound) {
			return usecase.ErrUserNotFound
		}
		return err
	}
	return nil
}
