package handlers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/gin-gonic/gin"
)

func toListParams(p dto.ListParams) portsrepo.ListParams {
	return portsrepo.ListParams{Limit: p.EffectiveLimit(), NextToken: p.NextToken}
}

// bindOptionalJSON binds the body when one was sent. Action endpoints accept an empty body.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func transitionMeta(req dto.TransitionRequest) domain.TransitionMeta {
	return domain.TransitionMeta{Comment: req.Comment, Reason: req.Reason}
}

// parseBordereauStatus accepts the integer wire value or its label.
func parseBordereauStatus(raw string) (*domain.BordereauStatus, error) {
	if raw == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		st := domain.BordereauStatus(n)
		return &st, nil
	}
	for _, st := range []domain.BordereauStatus{domain.BordereauSubmitted, domain.BordereauValidated, domain.BordereauRejected} {
		if st.String() == raw {
			return &st, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown bordereau status %q", apperrors.ErrValidation, raw)
}

func optional[T ~string](raw string) *T {
	if raw == "" {
		return nil
	}
	v := T(raw)
	return &v
}
