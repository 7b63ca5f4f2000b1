package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/shopspring/decimal"
)

type bordereauService struct {
	BaseService
	bordereauRepo portsrepo.BordereauRepositoryFacade
}

// NewBordereauService creates a bordereau service.
func NewBordereauService(bordereauRepo portsrepo.BordereauRepositoryFacade, opts ...Option) portssvc.BordereauSvcFacade {
	return &bordereauService{
		BaseService:   newBaseService(opts),
		bordereauRepo: bordereauRepo,
	}
}

var _ portssvc.BordereauSvcFacade = (*bordereauService)(nil)

func (s *bordereauService) CreateBordereau(ctx context.Context, actor domain.Actor, req dto.BordereauRequest) (*domain.Bordereau, error) {
	if err := s.Authorize(ctx, domain.EntityBordereau, domain.ActionCreate, actor); err != nil {
		return nil, err
	}

	b := domain.Bordereau{
		BordereauID: s.newID(),
		Status:      domain.BordereauSubmitted,
		AuditFields: domain.NewAuditFields(actor.UserID, s.Now()),
	}
	s.fill(&b, req)

	if err := s.bordereauRepo.SaveBordereau(ctx, b); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save bordereau", slog.String("reference", b.Reference))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Bordereau created", slog.String("bordereau_id", b.BordereauID))
	return &b, nil
}

// fill copies the request onto b, assigning new item IDs.
func (s *bordereauService) fill(b *domain.Bordereau, req dto.BordereauRequest) {
	b.Reference = strings.TrimSpace(req.Reference)
	b.ClientName = strings.TrimSpace(req.ClientName)
	b.Notes = req.Notes
	b.VATRate = domain.DefaultVATRate
	if req.VATRate != nil {
		b.VATRate = *req.VATRate
	}
	b.GlobalDiscount = decimal.Zero
	if req.GlobalDiscount != nil {
		b.GlobalDiscount = *req.GlobalDiscount
	}
	b.Items = make([]domain.BordereauItem, len(req.Items))
	for i, it := range req.Items {
		b.Items[i] = domain.BordereauItem{
			ItemID:      s.newID(),
			Designation: strings.TrimSpace(it.Designation),
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
}

func (s *bordereauService) GetBordereauByID(ctx context.Context, actor domain.Actor, bordereauID string) (*domain.Bordereau, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	return s.bordereauRepo.FindBordereauByID(ctx, bordereauID)
}

func (s *bordereauService) ListBordereaux(ctx context.Context, actor domain.Actor, st *domain.BordereauStatus, params portsrepo.ListParams) ([]domain.Bordereau, *string, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, nil, err
	}
	return s.bordereauRepo.ListBordereaux(ctx, st, params)
}

func (s *bordereauService) UpdateBordereau(ctx context.Context, actor domain.Actor, bordereauID string, req dto.BordereauRequest) (*domain.Bordereau, error) {
	if err := s.Authorize(ctx, domain.EntityBordereau, domain.ActionUpdate, actor); err != nil {
		return nil, err
	}
	b, err := s.bordereauRepo.FindBordereauByID(ctx, bordereauID)
	if err != nil {
		return nil, err
	}
	if err := b.EnsureEditable(); err != nil {
		return nil, err
	}

	version := b.Version
	s.fill(b, req)
	b.Touch(actor.UserID, s.Now())

	if err := s.bordereauRepo.UpdateBordereau(ctx, *b, version); err != nil {
		s.LogError(ctx, err, "Failed to update bordereau", slog.String("bordereau_id", bordereauID))
		return nil, err
	}
	b.Version = version + 1
	return b, nil
}

func (s *bordereauService) DeleteBordereau(ctx context.Context, actor domain.Actor, bordereauID string) error {
	if err := s.Authorize(ctx, domain.EntityBordereau, domain.ActionDelete, actor); err != nil {
		return err
	}
	b, err := s.bordereauRepo.FindBordereauByID(ctx, bordereauID)
	if err != nil {
		return err
	}
	if err := b.EnsureEditable(); err != nil {
		return err
	}
	if err := s.bordereauRepo.DeleteBordereau(ctx, bordereauID, b.Version); err != nil {
		s.LogError(ctx, err, "Failed to delete bordereau", slog.String("bordereau_id", bordereauID))
		return err
	}
	s.LogInfo(ctx, "Bordereau deleted", slog.String("bordereau_id", bordereauID))
	return nil
}

func (s *bordereauService) TransitionBordereau(ctx context.Context, actor domain.Actor, bordereauID string, action domain.Action, meta domain.TransitionMeta) (*domain.Bordereau, error) {
	if err := s.Authorize(ctx, domain.EntityBordereau, action, actor); err != nil {
		return nil, err
	}
	b, err := s.bordereauRepo.FindBordereauByID(ctx, bordereauID)
	if err != nil {
		return nil, err
	}
	from, version, now := b.Status, b.Version, s.Now()

	if err := b.Apply(action, actor, meta, now); err != nil {
		return nil, err
	}
	if err := s.bordereauRepo.UpdateBordereauStatus(ctx, *b, version); err != nil {
		s.LogError(ctx, err, "Failed to persist bordereau transition", slog.String("bordereau_id", bordereauID))
		return nil, err
	}
	b.Version = version + 1

	s.track(ctx, domain.EntityBordereau, bordereauID, action, from, b.Status, actor, now)
	return b, nil
}
