package repositories

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// DeviceTokenRepositoryFacade defines persistence for push notification tokens.
type DeviceTokenRepositoryFacade interface {
	// UpsertDeviceToken inserts the token or, when it already exists, reassigns it
	// to the given user and refreshes its metadata. It returns the stored row.
	UpsertDeviceToken(ctx context.Context, token domain.DeviceToken) (*domain.DeviceToken, error)
	DeleteDeviceToken(ctx context.Context, userID, token string) error
	ListDeviceTokensByUser(ctx context.Context, userID string) ([]domain.DeviceToken, error)
}
