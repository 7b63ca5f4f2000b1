package domain

import "fmt"

// Role is a user's role. Wire values are the historical integer ids.
type Role int

const (
	RoleAdmin      Role = 1
	RoleCommercial Role = 2
	RoleComptable  Role = 3
	RoleRH         Role = 4
	RoleTechnicien Role = 5
	RolePatron     Role = 6

	// RoleSystem is held only by background jobs and never issued in a token.
	RoleSystem Role = 99
)

var roleNames = map[Role]string{
	RoleAdmin:      "admin",
	RoleCommercial: "commercial",
	RoleComptable:  "comptable",
	RoleRH:         "rh",
	RoleTechnicien: "technicien",
	RolePatron:     "patron",
	RoleSystem:     "system",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// IsValid reports whether r is a role that may be assigned to a user.
func (r Role) IsValid() bool {
	return r >= RoleAdmin && r <= RolePatron
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// SystemActor is the identity used by scheduled jobs.
var SystemActor = Actor{UserID: "system", Role: RoleSystem}
