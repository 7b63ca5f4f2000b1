package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// LifecycleSvc is the single entry point for status transitions of any entity.
type LifecycleSvc interface {
	// Transition applies action to the entity identified by entity and id on behalf
	// of actor and returns the updated entity.
	Transition(ctx context.Context, entity domain.EntityType, id string, action domain.Action, actor domain.Actor, meta domain.TransitionMeta) (any, error)
}
