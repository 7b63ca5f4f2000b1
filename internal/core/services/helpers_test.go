package services_test

import (
	"fmt"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/core/services"
)

var (
	fixedNow   = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	admin      = domain.Actor{UserID: "u-admin", Role: domain.RoleAdmin}
	comptable  = domain.Actor{UserID: "u-compta", Role: domain.RoleComptable}
	commercial = domain.Actor{UserID: "u-sales", Role: domain.RoleCommercial}
	rh         = domain.Actor{UserID: "u-rh", Role: domain.RoleRH}
	technicien = domain.Actor{UserID: "u-tech", Role: domain.RoleTechnicien}
	patron     = domain.Actor{UserID: "u-boss", Role: domain.RolePatron}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testOptions pins the clock and the ID sequence and records transitions in tracker.
func testOptions(tracker *recordingTracker) []services.Option {
	n := 0
	return []services.Option{
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		services.WithTracker(tracker),
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
