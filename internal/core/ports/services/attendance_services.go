package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
)

// AttendanceSvcFacade defines attendance punches and their approval.
type AttendanceSvcFacade interface {
	// Punch records a check_in or check_out for the actor.
	Punch(ctx context.Context, actor domain.Actor, req dto.PunchRequest) (*domain.Attendance, error)
	GetAttendanceByID(ctx context.Context, actor domain.Actor, attendanceID string) (*domain.Attendance, error)
	ListAttendances(ctx context.Context, actor domain.Actor, filter portsrepo.AttendanceFilter, params portsrepo.ListParams) ([]domain.Attendance, *string, error)
	// TransitionAttendance runs approve or reject.
	TransitionAttendance(ctx context.Context, actor domain.Actor, attendanceID string, action domain.Action, meta domain.TransitionMeta) (*domain.Attendance, error)
}
