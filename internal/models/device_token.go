package models

import "time"

// DeviceToken is a row of the device_tokens table. Metadata holds raw JSONB.
type DeviceToken struct {
	TokenID    string    `db:"token_id"`
	UserID     string    `db:"user_id"`
	Token      string    `db:"token"`
	Platform   string    `db:"platform"`
	Metadata   []byte    `db:"metadata"`
	LastSeenAt time.Time `db:"last_seen_at"`
	AuditFields
}
