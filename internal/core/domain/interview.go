package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
)

// InterviewStatus is the lifecycle state of a recruitment interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// InterviewType is the medium of the interview.
type InterviewType string

const (
	InterviewPhone    InterviewType = "phone"
	InterviewVideo    InterviewType = "video"
	InterviewInPerson InterviewType = "in_person"
)

// InterviewLifecycle is the interview transition table.
var InterviewLifecycle = NewMachine[InterviewStatus](EntityInterview).
	Allow(ActionComplete, InterviewCompleted, InterviewScheduled).
	Allow(ActionCancel, InterviewCancelled, InterviewScheduled).
	Allow(ActionReschedule, InterviewScheduled, InterviewScheduled)

// Interview is a recruitment interview for an application.
type Interview struct {
	InterviewID   string          `json:"interviewID"`
	ApplicationID string          `json:"applicationID"`
	InterviewerID *string         `json:"interviewerID,omitempty"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
	Type          InterviewType   `json:"type"`
	Location      string          `json:"location"`
	MeetingLink   string          `json:"meetingLink"`
	Notes         string          `json:"notes"`
	Feedback      string          `json:"feedback"`
	Status        InterviewStatus `json:"status"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	AuditFields
}

// Reschedule carries the new slot. Empty fields keep their current value.
type Reschedule struct {
	ScheduledAt time.Time
	Location    string
	Type        InterviewType
	MeetingLink string
}

// Complete marks the interview held.
func (iv *Interview) Complete(actor Actor, feedback string, now time.Time) error {
	next, err := InterviewLifecycle.Next(iv.Status, ActionComplete)
	if err != nil {
		return err
	}
	iv.Status = next
	iv.CompletedAt = &now
	if feedback != "" {
		iv.Feedback = feedback
	}
	iv.InterviewerID = &actor.UserID
	iv.Touch(actor.UserID, now)
	return nil
}

// Cancel calls the interview off, appending the reason to the notes.
func (iv *Interview) Cancel(actor Actor, reason string, now time.Time) error {
	next, err := InterviewLifecycle.Next(iv.Status, ActionCancel)
	if err != nil {
		return err
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		if iv.Notes != "" {
			iv.Notes += "\n\n"
		}
		iv.Notes += "Cancellation reason: " + reason
	}
	iv.Status = next
	iv.Touch(actor.UserID, now)
	return nil
}

// Move changes the slot of a scheduled interview.
func (iv *Interview) Move(actor Actor, r Reschedule, now time.Time) error {
	if _, err := InterviewLifecycle.Next(iv.Status, ActionReschedule); err != nil {
		return err
	}
	if r.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: new interview time is required", apperrors.ErrValidation)
	}
	iv.ScheduledAt = r.ScheduledAt
	if r.Location != "" {
		iv.Location = r.Location
	}
	if r.Type != "" {
		iv.Type = r.Type
	}
	if r.MeetingLink != "" {
		iv.MeetingLink = r.MeetingLink
	}
	iv.Touch(actor.UserID, now)
	return nil
}
