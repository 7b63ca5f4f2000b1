package models

import "time"

// Attendance is a row of the attendances table.
type Attendance struct {
	AttendanceID    string     `db:"attendance_id"`
	UserID          string     `db:"user_id"`
	PunchType       string     `db:"punch_type"`
	PunchedAt       time.Time  `db:"punched_at"`
	Latitude        *float64   `db:"latitude"`
	Longitude       *float64   `db:"longitude"`
	Address         string     `db:"address"`
	Notes           string     `db:"notes"`
	Status          string     `db:"status"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	ApprovalComment string     `db:"approval_comment"`
	RejectionReason string     `db:"rejection_reason"`
	AuditFields
}
