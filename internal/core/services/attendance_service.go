package services

import (
	"context"
	"log/slog"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
)

type attendanceService struct {
	BaseService
	attendanceRepo portsrepo.AttendanceRepositoryFacade
}

// NewAttendanceService creates an attendance service.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade, opts ...Option) portssvc.AttendanceSvcFacade {
	return &attendanceService{
		BaseService:    newBaseService(opts),
		attendanceRepo: attendanceRepo,
	}
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

func (s *attendanceService) Punch(ctx context.Context, actor domain.Actor, req dto.PunchRequest) (*domain.Attendance, error) {
	punchType := domain.PunchType(req.Type)
	action, err := domain.PunchAction(punchType)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, domain.EntityAttendance, action, actor); err != nil {
		return nil, err
	}

	var location *domain.Location
	if req.Latitude != nil && req.Longitude != nil {
		location = &domain.Location{Latitude: *req.Latitude, Longitude: *req.Longitude, Address: req.Address}
	}

	now := s.Now()
	saved, err := s.attendanceRepo.SavePunch(ctx, actor.UserID, func(last *domain.Attendance) (*domain.Attendance, error) {
		if err := domain.CanPunch(last, punchType); err != nil {
			return nil, err
		}
		return &domain.Attendance{
			AttendanceID: s.newID(),
			UserID:       actor.UserID,
			Type:         punchType,
			PunchedAt:    now,
			Location:     location,
			Notes:        req.Notes,
			Status:       domain.AttendancePending,
			AuditFields:  domain.NewAuditFields(actor.UserID, now),
		}, nil
	})
	if err != nil {
		s.LogDebug(ctx, "Punch refused", slog.String("type", req.Type), slog.String("reason", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Punch recorded", slog.String("attendance_id", saved.AttendanceID), slog.String("type", req.Type))
	return saved, nil
}

// canReview reports whether actor may see and act on other users' punches.
func (s *attendanceService) canReview(actor domain.Actor) bool {
	return s.Can(domain.EntityAttendance, domain.ActionApprove, actor)
}

func (s *attendanceService) GetAttendanceByID(ctx context.Context, actor domain.Actor, attendanceID string) (*domain.Attendance, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	a, err := s.attendanceRepo.FindAttendanceByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	if a.UserID != actor.UserID && !s.canReview(actor) {
		return nil, s.Authorize(ctx, domain.EntityAttendance, domain.ActionApprove, actor)
	}
	return a, nil
}

func (s *attendanceService) ListAttendances(ctx context.Context, actor domain.Actor, filter portsrepo.AttendanceFilter, params portsrepo.ListParams) ([]domain.Attendance, *string, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, nil, err
	}
	if !s.canReview(actor) {
		filter.UserID = &actor.UserID
	}
	return s.attendanceRepo.ListAttendances(ctx, filter, params)
}

func (s *attendanceService) TransitionAttendance(ctx context.Context, actor domain.Actor, attendanceID string, action domain.Action, meta domain.TransitionMeta) (*domain.Attendance, error) {
	if err := s.Authorize(ctx, domain.EntityAttendance, action, actor); err != nil {
		return nil, err
	}
	a, err := s.attendanceRepo.FindAttendanceByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	from, version, now := a.Status, a.Version, s.Now()

	if err := a.Apply(action, actor, meta, now); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.UpdateAttendanceStatus(ctx, *a, version); err != nil {
		s.LogError(ctx, err, "Failed to persist attendance transition", slog.String("attendance_id", attendanceID))
		return nil, err
	}
	a.Version = version + 1

	s.track(ctx, domain.EntityAttendance, attendanceID, action, status(from), status(a.Status), actor, now)
	return a, nil
}
