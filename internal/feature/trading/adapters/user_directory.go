package adapters

import (
	"context"
	"errors"

	accountsusecase "kanairy_backend/internal/feature/accounts/usecase"
	"kanairy_backend/internal/feature/trading/usecase"
)

// userDirectory resolves broker logins from the accounts store.
type userDirectory struct {
	users accountsusecase.UserRepository
}

var _ usecase.UserDirectory = (*userDirectory)(nil)

// NewUserDirectory creates a UserDirectory over the accounts repository.
func NewUserDirectory(users accountsusecase.UserRepository) *userDirectory {
	return &userDirectory{users: users}
}

func (d *userDirectory) BrokerLogin(ctx context.Context, userID string) (string, error) {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, accountsusecase.ErrUserNotFound) {
			return "", usecase.ErrUserNotFound
		}
		return "", err
	}
	return u.BrokerAccount, nil
}
