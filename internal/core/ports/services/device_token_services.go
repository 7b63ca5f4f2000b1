package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/dto"
)

// DeviceTokenSvcFacade manages the push tokens of the current user.
type DeviceTokenSvcFacade interface {
	RegisterDeviceToken(ctx context.Context, actor domain.Actor, req dto.RegisterDeviceTokenRequest) (*domain.DeviceToken, error)
	UnregisterDeviceToken(ctx context.Context, actor domain.Actor, token string) error
	ListDeviceTokens(ctx context.Context, actor domain.Actor) ([]domain.DeviceToken, error)
}
