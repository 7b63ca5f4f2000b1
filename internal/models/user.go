package models

import "time"

// User represents an account allowed to sign in.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Role         int16  `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
