package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// PunchRequest is the body of the punch endpoint.
type PunchRequest struct {
	Type      string   `json:"type" binding:"required,oneof=check_in check_out"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Address   string   `json:"address" binding:"max=255"`
	Notes     string   `json:"notes" binding:"max=1000"`
}

// AttendanceListParams are the query parameters of the attendance list.
type AttendanceListParams struct {
	ListParams
	UserID string `form:"userID"`
}

// AttendanceResponse defines the data returned for a punch.
type AttendanceResponse struct {
	AttendanceID    string                  `json:"attendanceID"`
	UserID          string                  `json:"userID"`
	Type            domain.PunchType        `json:"type"`
	PunchedAt       time.Time               `json:"punchedAt"`
	Location        *domain.Location        `json:"location,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	Status          domain.AttendanceStatus `json:"status"`
	ApprovedBy      *string                 `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time              `json:"approvedAt,omitempty"`
	ApprovalComment string                  `json:"approvalComment,omitempty"`
	RejectionReason string                  `json:"rejectionReason,omitempty"`
	Version         int64                   `json:"version"`
}

// ToAttendanceResponse converts a domain.Attendance to AttendanceResponse DTO.
func ToAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:    a.AttendanceID,
		UserID:          a.UserID,
		Type:            a.Type,
		PunchedAt:       a.PunchedAt,
		Location:        a.Location,
		Notes:           a.Notes,
		Status:          a.Status,
		ApprovedBy:      a.ApprovedBy,
		ApprovedAt:      a.ApprovedAt,
		ApprovalComment: a.ApprovalComment,
		RejectionReason: a.RejectionReason,
		Version:         a.Version,
	}
}

// ToAttendanceResponses converts a slice of domain.Attendance to []AttendanceResponse.
func ToAttendanceResponses(list []domain.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, len(list))
	for i := range list {
		out[i] = ToAttendanceResponse(&list[i])
	}
	return out
}
