package repositories

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// BordereauReader defines read operations for bordereau data
type BordereauReader interface {
	// FindBordereauByID retrieves a bordereau with its items.
	FindBordereauByID(ctx context.Context, bordereauID string) (*domain.Bordereau, error)
	ListBordereaux(ctx context.Context, status *domain.BordereauStatus, params ListParams) ([]domain.Bordereau, *string, error)
}

// BordereauWriter defines write operations for bordereau data
type BordereauWriter interface {
	// SaveBordereau inserts the bordereau and its items in one transaction.
	SaveBordereau(ctx context.Context, bordereau domain.Bordereau) error
	// UpdateBordereau rewrites header and items guarded by expectedVersion.
	UpdateBordereau(ctx context.Context, bordereau domain.Bordereau, expectedVersion int64) error
	// UpdateBordereauStatus persists a transitioned bordereau guarded by expectedVersion.
	UpdateBordereauStatus(ctx context.Context, bordereau domain.Bordereau, expectedVersion int64) error
	DeleteBordereau(ctx context.Context, bordereauID string, expectedVersion int64) error
}

// BordereauRepositoryFacade combines all bordereau-related repository interfaces
type BordereauRepositoryFacade interface {
	BordereauReader
	BordereauWriter
}
