package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	policy  *domain.Policy
	tracker portssvc.TransitionTracker
	clock   func() time.Time
	newID   func() string
}

// Option is a functional option shared by every service constructor.
type Option func(*BaseService)

// WithPolicy replaces the default role policy.
func WithPolicy(p *domain.Policy) Option {
	return func(s *BaseService) {
		s.policy = p
	}
}

// WithTracker sends committed transitions to t.
func WithTracker(t portssvc.TransitionTracker) Option {
	return func(s *BaseService) {
		s.tracker = t
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithIDGenerator overrides the generator of entity IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *BaseService) {
		s.newID = newID
	}
}

func newBaseService(opts []Option) BaseService {
	b := BaseService{
		policy: domain.DefaultPolicy(),
		clock:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	return s.clock()
}

// Authorize checks the policy for (entity, action) and logs denials.
func (s *BaseService) Authorize(ctx context.Context, entity domain.EntityType, action domain.Action, actor domain.Actor) error {
	if err := s.policy.Authorize(entity, action, actor); err != nil {
		s.GetLogger(ctx).Warn("Action denied",
			slog.String("entity", string(entity)),
			slog.String("action", string(action)),
			slog.String("user_id", actor.UserID),
			slog.String("role", actor.Role.String()))
		return err
	}
	return nil
}

// Can reports whether actor may perform action on entity without logging.
func (s *BaseService) Can(entity domain.EntityType, action domain.Action, actor domain.Actor) bool {
	return s.policy.Authorize(entity, action, actor) == nil
}

// RequireActor rejects anonymous calls to read operations.
func (s *BaseService) RequireActor(actor domain.Actor) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: no authenticated actor", apperrors.ErrUnauthorized)
	}
	return nil
}

// track reports a committed transition and logs it.
func (s *BaseService) track(ctx context.Context, entity domain.EntityType, id string, action domain.Action, from, to fmt.Stringer, actor domain.Actor, at time.Time) {
	s.LogInfo(ctx, "Status transition applied",
		slog.String("entity", string(entity)),
		slog.String("entity_id", id),
		slog.String("action", string(action)),
		slog.String("from", from.String()),
		slog.String("to", to.String()))
	if s.tracker == nil {
		return
	}
	s.tracker.TrackTransition(ctx, portssvc.TransitionEvent{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		From:     from.String(),
		To:       to.String(),
		Actor:    actor,
		At:       at,
	})
}

// status adapts string-based statuses to fmt.Stringer for track.
type status string

func (s status) String() string { return string(s) }
