package services

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
)

// BordereauReaderSvc defines read operations for bordereaux
type BordereauReaderSvc interface {
	GetBordereauByID(ctx context.Context, actor domain.Actor, bordereauID string) (*domain.Bordereau, error)
	ListBordereaux(ctx context.Context, actor domain.Actor, status *domain.BordereauStatus, params portsrepo.ListParams) ([]domain.Bordereau, *string, error)
}

// BordereauWriterSvc defines write operations for bordereaux
type BordereauWriterSvc interface {
	CreateBordereau(ctx context.Context, actor domain.Actor, req dto.BordereauRequest) (*domain.Bordereau, error)
	// UpdateBordereau replaces header and items of a bordereau still awaiting validation.
	UpdateBordereau(ctx context.Context, actor domain.Actor, bordereauID string, req dto.BordereauRequest) (*domain.Bordereau, error)
	DeleteBordereau(ctx context.Context, actor domain.Actor, bordereauID string) error
	// TransitionBordereau runs validate or reject.
	TransitionBordereau(ctx context.Context, actor domain.Actor, bordereauID string, action domain.Action, meta domain.TransitionMeta) (*domain.Bordereau, error)
}

// BordereauSvcFacade combines all bordereau-related service interfaces
type BordereauSvcFacade interface {
	BordereauReaderSvc
	BordereauWriterSvc
}
