package domain

import (
	"fmt"

	"github.com/assacalos/easyconnect/internal/apperrors"
)

// EntityType names a statusful entity for transition tables and authorization.
type EntityType string

const (
	EntityBordereau   EntityType = "bordereau"
	EntityInvoice     EntityType = "invoice"
	EntityPayment     EntityType = "payment"
	EntityAttendance  EntityType = "attendance"
	EntityInterview   EntityType = "interview"
	EntitySchedule    EntityType = "payment_schedule"
	EntityInstallment EntityType = "installment"
	EntityDeviceToken EntityType = "device_token"
)

// Action is a requested operation on an entity.
type Action string

const (
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionSubmit      Action = "submit"
	ActionApprove     Action = "approve"
	ActionValidate    Action = "validate"
	ActionReject      Action = "reject"
	ActionPay         Action = "pay"
	ActionMarkOverdue Action = "mark_overdue"
	ActionMarkUnpaid  Action = "mark_unpaid"
	ActionReopen      Action = "reopen"
	ActionReactivate  Action = "reactivate"
	ActionCheckIn     Action = "check_in"
	ActionCheckOut    Action = "check_out"
	ActionComplete    Action = "complete"
	ActionCancel      Action = "cancel"
	ActionReschedule  Action = "reschedule"
	ActionGenerate    Action = "generate"
	ActionPause       Action = "pause"
	ActionResume      Action = "resume"
	ActionViewStats   Action = "view_stats"
)

// TransitionMeta carries the optional free text attached to a transition.
type TransitionMeta struct {
	Comment string
	Reason  string
}

type edge[S comparable] struct {
	from []S
	to   S
}

// Machine is a transition table for one entity type's status enum.
type Machine[S comparable] struct {
	entity EntityType
	edges  map[Action]edge[S]
}

// NewMachine creates an empty transition table for entity.
func NewMachine[S comparable](entity EntityType) *Machine[S] {
	return &Machine[S]{entity: entity, edges: make(map[Action]edge[S])}
}

// Allow registers action as legal from any of the given states, leading to to.
func (m *Machine[S]) Allow(action Action, to S, from ...S) *Machine[S] {
	m.edges[action] = edge[S]{from: from, to: to}
	return m
}

// Entity returns the entity type this table governs.
func (m *Machine[S]) Entity() EntityType {
	return m.entity
}

// Can reports whether action is legal from current.
func (m *Machine[S]) Can(current S, action Action) bool {
	e, ok := m.edges[action]
	if !ok {
		return false
	}
	for _, s := range e.from {
		if s == current {
			return true
		}
	}
	return false
}

// Next returns the state reached by applying action to current.
func (m *Machine[S]) Next(current S, action Action) (S, error) {
	if !m.Can(current, action) {
		var zero S
		return zero, fmt.Errorf("%w: cannot %s %s in status %v", apperrors.ErrInvalidTransition, action, m.entity, current)
	}
	return m.edges[action].to, nil
}
