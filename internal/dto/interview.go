package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// CreateInterviewRequest is the body for scheduling an interview.
type CreateInterviewRequest struct {
	ApplicationID string    `json:"applicationID" binding:"required"`
	InterviewerID *string   `json:"interviewerID"`
	ScheduledAt   time.Time `json:"scheduledAt" binding:"required"`
	Type          string    `json:"type" binding:"required,oneof=phone video in_person"`
	Location      string    `json:"location" binding:"max=255"`
	MeetingLink   string    `json:"meetingLink" binding:"omitempty,url"`
	Notes         string    `json:"notes" binding:"max=2000"`
}

// CompleteInterviewRequest is the body of the complete endpoint.
type CompleteInterviewRequest struct {
	Feedback string `json:"feedback" binding:"max=5000"`
}

// CancelInterviewRequest is the body of the cancel endpoint.
type CancelInterviewRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// RescheduleInterviewRequest is the body of the reschedule endpoint.
type RescheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Location    string    `json:"location" binding:"max=255"`
	Type        string    `json:"type" binding:"omitempty,oneof=phone video in_person"`
	MeetingLink string    `json:"meetingLink" binding:"omitempty,url"`
}

// InterviewResponse defines the data returned for an interview.
type InterviewResponse struct {
	InterviewID   string                 `json:"interviewID"`
	ApplicationID string                 `json:"applicationID"`
	InterviewerID *string                `json:"interviewerID,omitempty"`
	ScheduledAt   time.Time              `json:"scheduledAt"`
	Type          domain.InterviewType   `json:"type"`
	Location      string                 `json:"location,omitempty"`
	MeetingLink   string                 `json:"meetingLink,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Feedback      string                 `json:"feedback,omitempty"`
	Status        domain.InterviewStatus `json:"status"`
	CompletedAt   *time.Time             `json:"completedAt,omitempty"`
	Version       int64                  `json:"version"`
}

// ToInterviewResponse converts a domain.Interview to InterviewResponse DTO.
func ToInterviewResponse(iv *domain.Interview) InterviewResponse {
	return InterviewResponse{
		InterviewID:   iv.InterviewID,
		ApplicationID: iv.ApplicationID,
		InterviewerID: iv.InterviewerID,
		ScheduledAt:   iv.ScheduledAt,
		Type:          iv.Type,
		Location:      iv.Location,
		MeetingLink:   iv.MeetingLink,
		Notes:         iv.Notes,
		Feedback:      iv.Feedback,
		Status:        iv.Status,
		CompletedAt:   iv.CompletedAt,
		Version:       iv.Version,
	}
}
