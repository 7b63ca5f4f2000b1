package domain

import (
	"fmt"

	"github.com/assacalos/easyconnect/internal/apperrors"
)

type policyKey struct {
	entity EntityType
	action Action
}

// Policy maps (entity type, action) to the set of roles allowed to perform it.
// Pairs that are not registered are denied.
type Policy struct {
	rules map[policyKey]map[Role]struct{}
}

// NewPolicy creates an empty, deny-all policy.
func NewPolicy() *Policy {
	return &Policy{rules: make(map[policyKey]map[Role]struct{})}
}

// Grant allows roles to perform action on entity.
func (p *Policy) Grant(entity EntityType, action Action, roles ...Role) *Policy {
	key := policyKey{entity: entity, action: action}
	set, ok := p.rules[key]
	if !ok {
		set = make(map[Role]struct{}, len(roles))
		p.rules[key] = set
	}
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return p
}

// Authorize returns nil when actor may perform action on entity.
func (p *Policy) Authorize(entity EntityType, action Action, actor Actor) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: no authenticated actor", apperrors.ErrUnauthorized)
	}
	if _, ok := p.rules[policyKey{entity: entity, action: action}][actor.Role]; ok {
		return nil
	}
	return fmt.Errorf("%w: role %s may not %s %s", apperrors.ErrForbidden, actor.Role, action, entity)
}

var allStaff = []Role{RoleAdmin, RoleCommercial, RoleComptable, RoleRH, RoleTechnicien, RolePatron}

// DefaultPolicy is the role matrix used by the API.
func DefaultPolicy() *Policy {
	p := NewPolicy()

	p.Grant(EntityBordereau, ActionCreate, RoleAdmin, RoleCommercial, RolePatron).
		Grant(EntityBordereau, ActionUpdate, RoleAdmin, RoleCommercial, RolePatron).
		Grant(EntityBordereau, ActionDelete, RoleAdmin, RoleCommercial, RolePatron).
		Grant(EntityBordereau, ActionValidate, RoleAdmin, RolePatron).
		Grant(EntityBordereau, ActionReject, RoleAdmin, RolePatron)

	p.Grant(EntityInvoice, ActionCreate, RoleAdmin, RoleCommercial, RoleComptable, RolePatron).
		Grant(EntityInvoice, ActionPay, RoleAdmin, RoleComptable, RolePatron).
		Grant(EntityInvoice, ActionMarkUnpaid, RoleAdmin, RoleComptable, RoleSystem)

	p.Grant(EntityPayment, ActionCreate, RoleAdmin, RoleCommercial, RoleComptable, RolePatron).
		Grant(EntityPayment, ActionSubmit, RoleAdmin, RoleCommercial, RoleComptable, RolePatron).
		Grant(EntityPayment, ActionApprove, RoleAdmin, RoleComptable).
		Grant(EntityPayment, ActionValidate, RoleAdmin, RoleComptable).
		Grant(EntityPayment, ActionReject, RoleAdmin, RoleComptable).
		Grant(EntityPayment, ActionPay, RoleAdmin, RoleComptable).
		Grant(EntityPayment, ActionReactivate, RoleAdmin, RoleComptable).
		Grant(EntityPayment, ActionMarkOverdue, RoleAdmin, RoleComptable, RoleSystem)

	p.Grant(EntityAttendance, ActionCheckIn, allStaff...).
		Grant(EntityAttendance, ActionCheckOut, allStaff...).
		Grant(EntityAttendance, ActionApprove, RoleAdmin, RoleRH, RolePatron).
		Grant(EntityAttendance, ActionReject, RoleAdmin, RoleRH, RolePatron)

	p.Grant(EntityInterview, ActionCreate, RoleAdmin, RoleRH, RolePatron).
		Grant(EntityInterview, ActionComplete, RoleAdmin, RoleRH, RolePatron).
		Grant(EntityInterview, ActionCancel, RoleAdmin, RoleRH, RolePatron).
		Grant(EntityInterview, ActionReschedule, RoleAdmin, RoleRH, RolePatron)

	p.Grant(EntitySchedule, ActionCreate, RoleAdmin, RoleComptable, RolePatron).
		Grant(EntitySchedule, ActionGenerate, RoleAdmin, RoleComptable, RolePatron).
		Grant(EntitySchedule, ActionPause, RoleAdmin, RoleComptable, RolePatron).
		Grant(EntitySchedule, ActionResume, RoleAdmin, RoleComptable, RolePatron).
		Grant(EntitySchedule, ActionCancel, RoleAdmin, RoleComptable, RolePatron).
		Grant(EntitySchedule, ActionDelete, RoleAdmin).
		Grant(EntitySchedule, ActionViewStats, RoleAdmin, RoleComptable, RolePatron)

	p.Grant(EntityInstallment, ActionPay, RoleAdmin, RoleComptable, RolePatron)

	p.Grant(EntityDeviceToken, ActionCreate, allStaff...).
		Grant(EntityDeviceToken, ActionDelete, allStaff...)

	return p
}
