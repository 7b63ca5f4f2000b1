package repositories

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// AttendanceFilter narrows ListAttendances.
type AttendanceFilter struct {
	UserID *string
	Status *domain.AttendanceStatus
}

// PunchDecider builds the punch to insert given the user's latest punch (nil when none).
type PunchDecider func(last *domain.Attendance) (*domain.Attendance, error)

// AttendanceReader defines read operations for attendance data
type AttendanceReader interface {
	FindAttendanceByID(ctx context.Context, attendanceID string) (*domain.Attendance, error)
	ListAttendances(ctx context.Context, filter AttendanceFilter, params ListParams) ([]domain.Attendance, *string, error)
}

// AttendanceWriter defines write operations for attendance data
type AttendanceWriter interface {
	// SavePunch serializes punches per user: it locks the user, loads the latest punch,
	// lets decide build the new one and inserts it before committing.
	SavePunch(ctx context.Context, userID string, decide PunchDecider) (*domain.Attendance, error)
	// UpdateAttendanceStatus persists an approval transition guarded by expectedVersion.
	UpdateAttendanceStatus(ctx context.Context, attendance domain.Attendance, expectedVersion int64) error
}

// AttendanceRepositoryFacade combines all attendance-related repository interfaces
type AttendanceRepositoryFacade interface {
	AttendanceReader
	AttendanceWriter
}
