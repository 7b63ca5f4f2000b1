package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/models"
)

// ToModelDeviceToken converts a domain DeviceToken, encoding its metadata as JSON.
func ToModelDeviceToken(d domain.DeviceToken) (models.DeviceToken, error) {
	var meta []byte
	if len(d.Metadata) > 0 {
		b, err := json.Marshal(d.Metadata)
		if err != nil {
			return models.DeviceToken{}, fmt.Errorf("failed to encode device token metadata: %w", err)
		}
		meta = b
	}
	return models.DeviceToken{
		TokenID:     d.TokenID,
		UserID:      d.UserID,
		Token:       d.Token,
		Platform:    d.Platform,
		Metadata:    meta,
		LastSeenAt:  d.LastSeenAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainDeviceToken converts a model DeviceToken. Undecodable metadata is dropped.
func ToDomainDeviceToken(m models.DeviceToken) domain.DeviceToken {
	d := domain.DeviceToken{
		TokenID:     m.TokenID,
		UserID:      m.UserID,
		Token:       m.Token,
		Platform:    m.Platform,
		LastSeenAt:  m.LastSeenAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &d.Metadata)
	}
	return d
}
