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

// transitionHandler exposes the generic lifecycle dispatcher.
type transitionHandler struct {
	lifecycle portssvc.LifecycleSvc
}

func registerTransitionRoutes(rg *gin.RouterGroup, lifecycle portssvc.LifecycleSvc) {
	h := &transitionHandler{lifecycle: lifecycle}
	rg.POST("/transitions", h.transition)
}

// transition godoc
// @Summary Apply a status action to any entity
// @Description Runs the guarded transition for entityType/entityID and returns the updated entity.
// @Tags transitions
// @Accept  json
// @Produce  json
// @Param   transition body dto.LifecycleTransitionRequest true "Transition"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Transition not allowed from the current status"
// @Failure 403 {object} Response "Role not allowed"
// @Failure 404 {object} Response "Entity not found"
// @Failure 409 {object} Response "Concurrent update"
// @Security BearerAuth
// @Router /transitions [post]
func (h *transitionHandler) transition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.LifecycleTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entity := domain.EntityType(req.EntityType)
	action := domain.Action(req.Action)
	updated, err := h.lifecycle.Transition(c.Request.Context(), entity, req.EntityID, action, actor, domain.TransitionMeta{
		Comment: req.Comment,
		Reason:  req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Transition applied",
		slog.String("entity", req.EntityType),
		slog.String("entity_id", req.EntityID),
		slog.String("action", req.Action))
	respondOK(c, http.StatusOK, updated, "")
}
