package services

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// AuthSvcFacade defines the interface for login and token issuing.
type AuthSvcFacade interface {
	// Login checks the credentials and returns the user with a signed access token.
	Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error)

	// GenerateAccessToken creates a JWT carrying the user id and role.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// EnsureAdmin creates the bootstrap admin when no user has that username.
	EnsureAdmin(ctx context.Context, username, password, name string) error
}
