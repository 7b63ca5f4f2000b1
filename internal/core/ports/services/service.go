package services

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Payment     PaymentSvcFacade
	Invoice     InvoiceSvcFacade
	Bordereau   BordereauSvcFacade
	Attendance  AttendanceSvcFacade
	Interview   InterviewSvcFacade
	Schedule    ScheduleSvcFacade
	DeviceToken DeviceTokenSvcFacade
	Auth        AuthSvcFacade
	Lifecycle   LifecycleSvc
	Sweep       OverdueSweeperSvc

	// Clock is the time source shared by every service; handlers derive read-time flags from it.
	Clock func() time.Time
}

// TransitionEvent describes one successful status change.
type TransitionEvent struct {
	Entity   domain.EntityType
	EntityID string
	Action   domain.Action
	From     string
	To       string
	Actor    domain.Actor
	At       time.Time
}

// TransitionTracker receives status changes after they are committed.
// Implementations must not block the caller.
type TransitionTracker interface {
	TrackTransition(ctx context.Context, event TransitionEvent)
}
