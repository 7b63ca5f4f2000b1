package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/assacalos/easyconnect/internal/apperrors"
)

// AttendanceStatus is the approval state of a punch.
type AttendanceStatus string

const (
	AttendancePending  AttendanceStatus = "pending"
	AttendanceApproved AttendanceStatus = "approved"
	AttendanceRejected AttendanceStatus = "rejected"
)

// PunchType is the direction of a punch.
type PunchType string

const (
	PunchCheckIn  PunchType = "check_in"
	PunchCheckOut PunchType = "check_out"
)

// MaxRejectionReasonLength bounds the attendance rejection reason, in characters.
const MaxRejectionReasonLength = 500

// AttendanceLifecycle is the attendance approval transition table.
var AttendanceLifecycle = NewMachine[AttendanceStatus](EntityAttendance).
	Allow(ActionApprove, AttendanceApproved, AttendancePending).
	Allow(ActionReject, AttendanceRejected, AttendancePending)

// Location is where a punch happened.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Attendance is a single check-in or check-out punch.
type Attendance struct {
	AttendanceID    string           `json:"attendanceID"`
	UserID          string           `json:"userID"`
	Type            PunchType        `json:"type"`
	PunchedAt       time.Time        `json:"punchedAt"`
	Location        *Location        `json:"location,omitempty"`
	Notes           string           `json:"notes"`
	Status          AttendanceStatus `json:"status"`
	ApprovedBy      *string          `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time       `json:"approvedAt,omitempty"`
	ApprovalComment string           `json:"approvalComment,omitempty"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	AuditFields
}

// PunchAction maps a punch type to its lifecycle action.
func PunchAction(t PunchType) (Action, error) {
	switch t {
	case PunchCheckIn:
		return ActionCheckIn, nil
	case PunchCheckOut:
		return ActionCheckOut, nil
	}
	return "", fmt.Errorf("%w: unknown punch type %q", apperrors.ErrValidation, t)
}

// CanPunch checks that requested alternates with the user's last punch.
// A first punch must be a check-in.
func CanPunch(last *Attendance, requested PunchType) error {
	if _, err := PunchAction(requested); err != nil {
		return err
	}
	if last == nil {
		if requested == PunchCheckIn {
			return nil
		}
		return fmt.Errorf("%w: cannot punch now, no prior check_in", apperrors.ErrInvalidTransition)
	}
	if last.Type == requested {
		return fmt.Errorf("%w: cannot punch now, last punch was already %s", apperrors.ErrInvalidTransition, requested)
	}
	return nil
}

// Apply performs an approval transition. It leaves a untouched on error.
func (a *Attendance) Apply(action Action, actor Actor, meta TransitionMeta, now time.Time) error {
	next, err := AttendanceLifecycle.Next(a.Status, action)
	if err != nil {
		return err
	}
	if action == ActionReject {
		reason := strings.TrimSpace(meta.Reason)
		if reason == "" {
			return fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
		}
		if utf8.RuneCountInString(reason) > MaxRejectionReasonLength {
			return fmt.Errorf("%w: rejection reason exceeds %d characters", apperrors.ErrValidation, MaxRejectionReasonLength)
		}
		a.RejectionReason = reason
	} else {
		a.ApprovalComment = meta.Comment
	}
	a.ApprovedBy = &actor.UserID
	a.ApprovedAt = &now
	a.Status = next
	a.Touch(actor.UserID, now)
	return nil
}
