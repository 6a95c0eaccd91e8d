package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanairy_backend/internal/feature/accounts/domain/entity"
	"kanairy_backend/internal/feature/accounts/usecase"
)

// UserModel is the GORM model for the users table of the local store.
type UserModel struct {
	ID                string `gorm:"primaryKey;size:36"`
	BrokerAccount     string `gorm:"size:100;not null;uniqueIndex:user_account_server,priority:1"`
	Server            string `gorm:"size:100;not null;uniqueIndex:user_account_server,priority:2"`
	EncryptedPassword string `gorm:"size:500;not null"`
	IV                string `gorm:"size:100;not null"`
	AuthTag           string `gorm:"size:100;not null"`
	Broker            string `gorm:"size:50;not null"`
	AccountType       string `gorm:"size:20;not null"`
	Balance           float64
	Equity            float64
	Currency          string `gorm:"size:10;not null"`
	LastLogin         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:            m.ID,
		BrokerAccount: m.BrokerAccount,
		Credential: entity.EncryptedCredential{
			Ciphertext: m.EncryptedPassword,
			IV:         m.IV,
			AuthTag:    m.AuthTag,
		},
		Server:      m.Server,
		Broker:      m.Broker,
		AccountType: m.AccountType,
		Balance:     m.Balance,
		Equity:      m.Equity,
		Currency:    m.Currency,
		LastLogin:   m.LastLogin,
	}
}

func userModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:                u.ID,
		BrokerAccount:     u.BrokerAccount,
		Server:            u.Server,
		EncryptedPassword: u.Credential.Ciphertext,
		IV:                u.Credential.IV,
		AuthTag:           u.Credential.AuthTag,
		Broker:            u.Broker,
		AccountType:       u.AccountType,
		Balance:           u.Balance,
		Equity:            u.Equity,
		Currency:          u.Currency,
		LastLogin:         u.LastLogin,
	}
}

// userGorm implements UserRepository on the local GORM store. It is selected
// when no Appwrite credentials are configured, typically on the local deploy
// path with a placeholder .env.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a UserRepository backed by the local database.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	m := userModelFromEntity(u)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}

func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func (r *userGorm) FindByBrokerAccount(ctx context.Context, brokerAccount, server string) (*entity.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).
		Where("broker_account = ? AND server = ?", brokerAccount, server).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func (r *userGorm) UpdateBalances(ctx context.Context, id string, balance, equity float64, lastLogin time.Time) error {
	res := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"balance":    balance,
		"equity":     equity,
		"last_login": lastLogin,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
