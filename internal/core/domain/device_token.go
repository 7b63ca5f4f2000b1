package domain

import "time"

// DeviceToken is a push notification token registered by a user's device.
type DeviceToken struct {
	TokenID    string         `json:"tokenID"`
	UserID     string         `json:"userID"`
	Token      string         `json:"token"`
	Platform   string         `json:"platform"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	LastSeenAt time.Time      `json:"lastSeenAt"`
	AuditFields
}
