package models

import "time"

// Interview is a row of the interviews table.
type Interview struct {
	InterviewID   string     `db:"interview_id"`
	ApplicationID string     `db:"application_id"`
	InterviewerID *string    `db:"interviewer_id"`
	ScheduledAt   time.Time  `db:"scheduled_at"`
	InterviewType string     `db:"interview_type"`
	Location      string     `db:"location"`
	MeetingLink   string     `db:"meeting_link"`
	Notes         string     `db:"notes"`
	Feedback      string     `db:"feedback"`
	Status        string     `db:"status"`
	CompletedAt   *time.Time `db:"completed_at"`
	AuditFields
}
