package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/platform/config"
	"github.com/assacalos/easyconnect/internal/utils"
)

// authService checks credentials and issues JWT access tokens.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, opts ...Option) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(opts),
		cfg:         cfg,
		userRepo:    userRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

var errInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login for unknown user")
			return nil, "", time.Time{}, errInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, "", time.Time{}, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		s.LogInfo(ctx, "Login with wrong password", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, errInvalidCredentials
	}

	token, expiresAt, err := s.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, token, expiresAt, nil
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *authService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, int(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiryTime, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password, name string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := domain.User{
		UserID:       s.newID(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         domain.RoleAdmin,
		AuditFields:  domain.NewAuditFields(domain.SystemActor.UserID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return err
	}
	s.LogInfo(ctx, "Bootstrap admin created", slog.String("user_id", admin.UserID))
	return nil
}
