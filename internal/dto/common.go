package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date accepts either a calendar date ("2024-01-31") or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// DatePtr converts an optional Date into an optional time.
func DatePtr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// TransitionRequest is the body of every status action endpoint.
type TransitionRequest struct {
	Comment string `json:"comment" binding:"max=1000"`
	Reason  string `json:"reason" binding:"max=1000"`
}

// ListParams are the query parameters shared by list endpoints.
type ListParams struct {
	Status    string  `form:"status"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// DefaultListLimit applies when a list request omits limit.
const DefaultListLimit = 20

// EffectiveLimit returns Limit or the default.
func (p ListParams) EffectiveLimit() int {
	if p.Limit <= 0 {
		return DefaultListLimit
	}
	return p.Limit
}

// Page is a list response with an optional continuation token.
type Page[T any] struct {
	Items     []T     `json:"items"`
	NextToken *string `json:"nextToken,omitempty"`
}

// LifecycleTransitionRequest is the body of the generic transition endpoint.
type LifecycleTransitionRequest struct {
	EntityType string `json:"entityType" binding:"required"`
	EntityID   string `json:"entityID" binding:"required"`
	Action     string `json:"action" binding:"required"`
	Comment    string `json:"comment" binding:"max=1000"`
	Reason     string `json:"reason" binding:"max=1000"`
}
