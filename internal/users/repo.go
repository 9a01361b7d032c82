package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// UpsertGoogle links a Google identity to the account with the same
	// email, creating it when missing. An empty refresh token keeps the
	// stored one.
	UpsertGoogle(ctx context.Context, user User) (User, error)
}
