package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
)

type deviceTokenService struct {
	BaseService
	tokenRepo portsrepo.DeviceTokenRepositoryFacade
}

// NewDeviceTokenService creates the push token registry service.
func NewDeviceTokenService(tokenRepo portsrepo.DeviceTokenRepositoryFacade, opts ...Option) portssvc.DeviceTokenSvcFacade {
	return &deviceTokenService{BaseService: newBaseService(opts), tokenRepo: tokenRepo}
}

var _ portssvc.DeviceTokenSvcFacade = (*deviceTokenService)(nil)

func (s *deviceTokenService) RegisterDeviceToken(ctx context.Context, actor domain.Actor, req dto.RegisterDeviceTokenRequest) (*domain.DeviceToken, error) {
	if err := s.Authorize(ctx, domain.EntityDeviceToken, domain.ActionCreate, actor); err != nil {
		return nil, err
	}
	now := s.Now()
	saved, err := s.tokenRepo.UpsertDeviceToken(ctx, domain.DeviceToken{
		TokenID:     s.newID(),
		UserID:      actor.UserID,
		Token:       strings.TrimSpace(req.Token),
		Platform:    req.Platform,
		Metadata:    req.Metadata,
		LastSeenAt:  now,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register device token")
		return nil, err
	}
	s.LogDebug(ctx, "Device token registered", slog.String("token_id", saved.TokenID))
	return saved, nil
}

func (s *deviceTokenService) UnregisterDeviceToken(ctx context.Context, actor domain.Actor, token string) error {
	if err := s.Authorize(ctx, domain.EntityDeviceToken, domain.ActionDelete, actor); err != nil {
		return err
	}
	return s.tokenRepo.DeleteDeviceToken(ctx, actor.UserID, token)
}

func (s *deviceTokenService) ListDeviceTokens(ctx context.Context, actor domain.Actor) ([]domain.DeviceToken, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	return s.tokenRepo.ListDeviceTokensByUser(ctx, actor.UserID)
}
