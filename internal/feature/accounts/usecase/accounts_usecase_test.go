package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanairy_backend/internal/feature/accounts/domain/entity"
)

type mockUserRepo struct {
	users       map[string]*entity.User
	byAccount   map[string]*entity.User
	createErr   error
	findErr     error
	balancesSet bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:     map[string]*entity.User{},
		byAccount: map[string]*entity.User{},
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "user-" + user.BrokerAccount
	m.users[user.ID] = user
	m.byAccount[user.BrokerAccount+"/"+user.Server] = user
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) FindByBrokerAccount(ctx context.Context, brokerAccount, server string) (*entity.User, error) {
	if u, ok := m.byAccount[brokerAccount+"/"+server]; ok {
		return u, nil
	}
	if m.findErr != nil {
		return nil, m.findErr
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) UpdateBalances(ctx context.Context, id string, balance, equity float64, lastLogin time.Time) error {
	m.balancesSet = true
	if u, ok := m.users[id]; ok {
		u.Balance = balance
		u.Equity = equity
	}
	return nil
}

type mockBroker struct {
	connectInfo entity.AccountInfo
	connectErr  error
	infoErr     error
	lastLogin   string
	lastPass    string
}

func (m *mockBroker) ConnectAccount(ctx context.Context, login, password, server, platform string) (entity.AccountInfo, error) {
	m.lastLogin = login
	m.lastPass = password
	return m.connectInfo, m.connectErr
}

func (m *mockBroker) AccountInformation(ctx context.Context, login string) (entity.AccountInfo, error) {
	if m.infoErr != nil {
		return entity.AccountInfo{}, m.infoErr
	}
	return m.connectInfo, nil
}

type fakeCipher struct {
	decryptErr error
}

func (f *fakeCipher) Encrypt(plaintext string) (entity.EncryptedCredential, error) {
	return entity.EncryptedCredential{Ciphertext: "enc:" + plaintext, IV: "iv", AuthTag: "tag"}, nil
}

func (f *fakeCipher) Decrypt(cred entity.EncryptedCredential) (string, error) {
	if f.decryptErr != nil {
		return "", f.decryptErr
	}
	return cred.Ciphertext[len("enc:"):], nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID string) (string, error) { return "token-" + userID, nil }

func TestConnectBroker_CreatesUserOnFirstContact(t *testing.T) {
	repo := newMockUserRepo()
	broker := &mockBroker{connectInfo: entity.AccountInfo{Balance: 1000, Equity: 990, Currency: "USD"}}
	uc := NewAccountsUsecase(repo, broker, &fakeCipher{}, fakeTokens{})

	res, err := uc.ConnectBroker(context.Background(), ConnectParams{
		Login:    "50012345",
		Password: "secret",
		Server:   "Demo-Server",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-50012345", res.User.ID)
	assert.Equal(t, "mt5", res.User.Broker)
	assert.Equal(t, "demo", res.User.AccountType)
	assert.Equal(t, 1000.0, res.User.Balance)
	assert.Equal(t, "token-user-50012345", res.Token)
	assert.Equal(t, "secret", broker.lastPass)
	assert.True(t, repo.balancesSet)
}

func TestConnectBroker_WrappedNotFoundStillCreatesUser(t *testing.T) {
	repo := newMockUserRepo()
	repo.findErr = fmt.Errorf("lookup broker account: %w", ErrUserNotFound)
	broker := &mockBroker{connectInfo: entity.AccountInfo{Balance: 1000, Currency: "USD"}}
	uc := NewAccountsUsecase(repo, broker, &fakeCipher{}, fakeTokens{})

	res, err := uc.ConnectBroker(context.Background(), ConnectParams{
		Login:    "50012345",
		Password: "secret",
		Server:   "Demo-Server",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-50012345", res.User.ID)
}

func TestConnectBroker_ReusesStoredCredential(t *testing.T) {
	repo := newMockUserRepo()
	cipher := &fakeCipher{}
	cred, _ := cipher.Encrypt("stored-pass")
	existing := &entity.User{ID: "user-1", BrokerAccount: "50012345", Server: "Demo-Server", Credential: cred}
	repo.users["user-1"] = existing
	repo.byAccount["50012345/Demo-Server"] = existing

	broker := &mockBroker{connectInfo: entity.AccountInfo{Balance: 500, Currency: "USD"}}
	uc := NewAccountsUsecase(repo, broker, cipher, fakeTokens{})

	res, err := uc.ConnectBroker(context.Background(), ConnectParams{
		Login:    "50012345",
		Password: "submitted-pass",
		Server:   "Demo-Server",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, "stored-pass", broker.lastPass, "stored credential must win over the submitted one")
}

func TestConnectBroker_DecryptFailureFallsBackToSubmitted(t *testing.T) {
	repo := newMockUserRepo()
	existing := &entity.User{ID: "user-1", BrokerAccount: "50012345", Server: "Demo-Server"}
	repo.users["user-1"] = existing
	repo.byAccount["50012345/Demo-Server"] = existing

	broker := &mockBroker{}
	uc := NewAccountsUsecase(repo, broker, &fakeCipher{decryptErr: errors.New("bad key")}, fakeTokens{})

	_, err := uc.ConnectBroker(context.Background(), ConnectParams{
		Login:    "50012345",
		Password: "submitted-pass",
		Server:   "Demo-Server",
	})
	require.NoError(t, err)
	assert.Equal(t, "submitted-pass", broker.lastPass)
}

func TestConnectBroker_BrokerFailure(t *testing.T) {
	repo := newMockUserRepo()
	broker := &mockBroker{connectErr: errors.New("deploy timeout")}
	uc := NewAccountsUsecase(repo, broker, &fakeCipher{}, fakeTokens{})

	_, err := uc.ConnectBroker(context.Background(), ConnectParams{
		Login: "50012345", Password: "p", Server: "s",
	})
	assert.ErrorContains(t, err, "broker connection failed")
}

func TestConnectBroker_NilBroker(t *testing.T) {
	uc := NewAccountsUsecase(newMockUserRepo(), nil, &fakeCipher{}, fakeTokens{})

	_, err := uc.ConnectBroker(context.Background(), ConnectParams{Login: "1", Password: "p", Server: "s"})
	assert.ErrorIs(t, err, ErrBrokerNotConfigured)
}

func TestGetAccountInfo_FallsBackToCachedData(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["user-1"] = &entity.User{ID: "user-1", BrokerAccount: "50012345", Balance: 777, Equity: 770, Currency: "EUR"}

	broker := &mockBroker{infoErr: errors.New("gateway down")}
	uc := NewAccountsUsecase(repo, broker, &fakeCipher{}, fakeTokens{})

	user, info, err := uc.GetAccountInfo(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, 777.0, info.Balance)
	assert.Equal(t, "EUR", info.Currency)
}

func TestGetAccountInfo_UnknownUser(t *testing.T) {
	uc := NewAccountsUsecase(newMockUserRepo(), &mockBroker{}, &fakeCipher{}, fakeTokens{})

	_, _, err := uc.GetAccountInfo(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
