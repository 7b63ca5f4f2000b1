package dto

import (
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// RegisterDeviceTokenRequest is the body for registering a push token.
type RegisterDeviceTokenRequest struct {
	Token    string         `json:"token" binding:"required,max=512"`
	Platform string         `json:"platform" binding:"omitempty,oneof=android ios web"`
	Metadata map[string]any `json:"metadata"`
}

// DeviceTokenResponse defines the data returned for a device token.
type DeviceTokenResponse struct {
	TokenID    string         `json:"tokenID"`
	Token      string         `json:"token"`
	Platform   string         `json:"platform,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	LastSeenAt time.Time      `json:"lastSeenAt"`
}

// ToDeviceTokenResponse converts a domain.DeviceToken to DeviceTokenResponse DTO.
func ToDeviceTokenResponse(t *domain.DeviceToken) DeviceTokenResponse {
	return DeviceTokenResponse{
		TokenID:    t.TokenID,
		Token:      t.Token,
		Platform:   t.Platform,
		Metadata:   t.Metadata,
		LastSeenAt: t.LastSeenAt,
	}
}
