package handlers

import (
	"log/slog"
	"net/http"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bordereauHandler handles HTTP requests related to bordereaux.
type bordereauHandler struct {
	bordereauService portssvc.BordereauSvcFacade
}

func newBordereauHandler(bs portssvc.BordereauSvcFacade) *bordereauHandler {
	return &bordereauHandler{bordereauService: bs}
}

func registerBordereauRoutes(rg *gin.RouterGroup, bordereauService portssvc.BordereauSvcFacade) {
	h := newBordereauHandler(bordereauService)

	bordereaux := rg.Group("/bordereaux")
	{
		bordereaux.POST("", h.createBordereau)
		bordereaux.GET("", h.listBordereaux)
		bordereaux.GET("/:id", h.getBordereau)
		bordereaux.PUT("/:id", h.updateBordereau)
		bordereaux.DELETE("/:id", h.deleteBordereau)
		bordereaux.POST("/:id/validate", h.transitionBordereau(domain.ActionValidate))
		bordereaux.POST("/:id/reject", h.transitionBordereau(domain.ActionReject))
	}
}

// createBordereau godoc
// @Summary Create a bordereau
// @Description Creates a bordereau awaiting validation. VAT defaults to 20%.
// @Tags bordereaux
// @Accept  json
// @Produce  json
// @Param   bordereau body dto.BordereauRequest true "Bordereau with its items"
// @Success 201 {object} Response{data=dto.BordereauResponse}
// @Failure 409 {object} Response "Reference already used"
// @Failure 422 {object} Response "Validation error"
// @Security BearerAuth
// @Router /bordereaux [post]
func (h *bordereauHandler) createBordereau(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.BordereauRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	b, err := h.bordereauService.CreateBordereau(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Bordereau created", slog.String("bordereau_id", b.BordereauID), slog.String("reference", b.Reference))
	respondOK(c, http.StatusCreated, dto.ToBordereauResponse(b), "Bordereau created")
}

// getBordereau godoc
// @Summary Get a bordereau
// @Tags bordereaux
// @Produce  json
// @Param   id path string true "Bordereau ID"
// @Success 200 {object} Response{data=dto.BordereauResponse}
// @Failure 404 {object} Response "Bordereau not found"
// @Security BearerAuth
// @Router /bordereaux/{id} [get]
func (h *bordereauHandler) getBordereau(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	b, err := h.bordereauService.GetBordereauByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToBordereauResponse(b), "")
}

// listBordereaux godoc
// @Summary List bordereaux
// @Tags bordereaux
// @Produce  json
// @Param   status query string false "Status as integer or label"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} Response{data=dto.Page[dto.BordereauResponse]}
// @Security BearerAuth
// @Router /bordereaux [get]
func (h *bordereauHandler) listBordereaux(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	status, err := parseBordereauStatus(params.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	list, next, err := h.bordereauService.ListBordereaux(c.Request.Context(), actor, status, toListParams(params))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.Page[dto.BordereauResponse]{Items: dto.ToBordereauResponses(list), NextToken: next}, "")
}

// updateBordereau godoc
// @Summary Update a bordereau
// @Description Replaces header and items. Only allowed while the bordereau awaits validation.
// @Tags bordereaux
// @Accept  json
// @Produce  json
// @Param   id path string true "Bordereau ID"
// @Param   bordereau body dto.BordereauRequest true "Bordereau with its items"
// @Success 200 {object} Response{data=dto.BordereauResponse}
// @Failure 403 {object} Response "Bordereau can no longer be edited"
// @Failure 409 {object} Response "Concurrent modification"
// @Security BearerAuth
// @Router /bordereaux/{id} [put]
func (h *bordereauHandler) updateBordereau(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.BordereauRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	b, err := h.bordereauService.UpdateBordereau(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToBordereauResponse(b), "Bordereau updated")
}

// deleteBordereau godoc
// @Summary Delete a bordereau
// @Tags bordereaux
// @Param   id path string true "Bordereau ID"
// @Success 204 "No Content"
// @Failure 403 {object} Response "Bordereau can no longer be deleted"
// @Failure 404 {object} Response "Bordereau not found"
// @Security BearerAuth
// @Router /bordereaux/{id} [delete]
func (h *bordereauHandler) deleteBordereau(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.bordereauService.DeleteBordereau(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// transitionBordereau godoc
// @Summary Validate or reject a bordereau
// @Tags bordereaux
// @Accept  json
// @Produce  json
// @Param   id path string true "Bordereau ID"
// @Param   body body dto.TransitionRequest false "Rejection reason"
// @Success 200 {object} Response{data=dto.BordereauResponse}
// @Failure 400 {object} Response "Transition not allowed from the current status"
// @Failure 403 {object} Response "Role not allowed"
// @Security BearerAuth
// @Router /bordereaux/{id}/{action} [post]
func (h *bordereauHandler) transitionBordereau(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var req dto.TransitionRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			respondBindError(c, err)
			return
		}
		b, err := h.bordereauService.TransitionBordereau(c.Request.Context(), actor, c.Param("id"), action, transitionMeta(req))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, dto.ToBordereauResponse(b), "Bordereau "+b.Status.String())
	}
}
