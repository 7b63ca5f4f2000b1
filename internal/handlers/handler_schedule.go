package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/gin-gonic/gin"
)

// scheduleHandler handles payment schedules and their installments.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
	now             func() time.Time
}

// newScheduleHandler derives overdue flags with clock, which must be the services' clock
// so reads agree with the overdue queries. A nil clock falls back to UTC wall time.
func newScheduleHandler(ss portssvc.ScheduleSvcFacade, clock func() time.Time) *scheduleHandler {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &scheduleHandler{scheduleService: ss, now: clock}
}

func registerScheduleRoutes(rg *gin.RouterGroup, scheduleService portssvc.ScheduleSvcFacade, clock func() time.Time) {
	h := newScheduleHandler(scheduleService, clock)

	schedules := rg.Group("/payment-schedules")
	{
		schedules.POST("", h.createSchedule)
		schedules.GET("", h.listSchedules)
		schedules.GET("/stats", h.getStats)
		schedules.GET("/:id", h.getSchedule)
		schedules.DELETE("/:id", h.deleteSchedule)
		schedules.POST("/:id/generate", h.generateInstallments)
		for _, action := range []domain.Action{domain.ActionPause, domain.ActionResume, domain.ActionCancel} {
			schedules.POST("/:id/"+string(action), h.transitionSchedule(action))
		}
	}

	installments := rg.Group("/installments")
	{
		installments.GET("/upcoming", h.upcomingInstallments)
		installments.GET("/overdue", h.overdueInstallments)
		installments.POST("/:id/pay", h.payInstallment)
	}
}

// createSchedule godoc
// @Summary Create a payment schedule
// @Description End date defaults to the due date of the last installment.
// @Tags payment-schedules
// @Accept  json
// @Produce  json
// @Param   schedule body dto.CreateScheduleRequest true "Schedule"
// @Success 201 {object} Response{data=dto.ScheduleResponse}
// @Failure 422 {object} Response "Validation error"
// @Security BearerAuth
// @Router /payment-schedules [post]
func (h *scheduleHandler) createSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	s, err := h.scheduleService.CreateSchedule(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Payment schedule created", slog.String("schedule_id", s.ScheduleID))
	respondOK(c, http.StatusCreated, dto.ToScheduleResponse(s, nil, h.now()), "Payment schedule created")
}

// getSchedule godoc
// @Summary Get a payment schedule with its installments
// @Tags payment-schedules
// @Produce  json
// @Param   id path string true "Schedule ID"
// @Success 200 {object} Response{data=dto.ScheduleResponse}
// @Failure 404 {object} Response "Schedule not found"
// @Security BearerAuth
// @Router /payment-schedules/{id} [get]
func (h *scheduleHandler) getSchedule(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	s, installments, err := h.scheduleService.GetSchedule(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToScheduleResponse(s, installments, h.now()), "")
}

// listSchedules godoc
// @Summary List payment schedules
// @Tags payment-schedules
// @Produce  json
// @Param   status query string false "Status filter"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} Response{data=dto.Page[dto.ScheduleResponse]}
// @Security BearerAuth
// @Router /payment-schedules [get]
func (h *scheduleHandler) listSchedules(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	list, next, err := h.scheduleService.ListSchedules(c.Request.Context(), actor, optional[domain.ScheduleStatus](params.Status), toListParams(params))
	if err != nil {
		respondError(c, err)
		return
	}
	now := h.now()
	items := make([]dto.ScheduleResponse, len(list))
	for i := range list {
		items[i] = dto.ToScheduleResponse(&list[i], nil, now)
	}
	respondOK(c, http.StatusOK, dto.Page[dto.ScheduleResponse]{Items: items, NextToken: next}, "")
}

// getStats godoc
// @Summary Schedule statistics
// @Tags payment-schedules
// @Produce  json
// @Success 200 {object} Response{data=domain.ScheduleStats}
// @Failure 403 {object} Response "Role not allowed"
// @Security BearerAuth
// @Router /payment-schedules/stats [get]
func (h *scheduleHandler) getStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	stats, err := h.scheduleService.GetScheduleStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, stats, "")
}

// generateInstallments godoc
// @Summary Generate the installments of a schedule
// @Description Allowed once per schedule.
// @Tags payment-schedules
// @Produce  json
// @Param   id path string true "Schedule ID"
// @Success 200 {object} Response{data=dto.ScheduleResponse}
// @Failure 400 {object} Response "Installments already generated"
// @Security BearerAuth
// @Router /payment-schedules/{id}/generate [post]
func (h *scheduleHandler) generateInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	s, installments, err := h.scheduleService.GenerateInstallments(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Installments generated", slog.String("schedule_id", s.ScheduleID), slog.Int("count", len(installments)))
	respondOK(c, http.StatusOK, dto.ToScheduleResponse(s, installments, h.now()), "Installments generated")
}

// transitionSchedule godoc
// @Summary Pause, resume or cancel a schedule
// @Tags payment-schedules
// @Produce  json
// @Param   id path string true "Schedule ID"
// @Success 200 {object} Response{data=dto.ScheduleResponse}
// @Failure 400 {object} Response "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /payment-schedules/{id}/{action} [post]
func (h *scheduleHandler) transitionSchedule(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		s, err := h.scheduleService.TransitionSchedule(c.Request.Context(), actor, c.Param("id"), action)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, dto.ToScheduleResponse(s, nil, h.now()), "Payment schedule "+string(s.Status))
	}
}

// deleteSchedule godoc
// @Summary Delete a payment schedule
// @Tags payment-schedules
// @Param   id path string true "Schedule ID"
// @Success 204 "No Content"
// @Failure 403 {object} Response "Only admins may delete schedules"
// @Security BearerAuth
// @Router /payment-schedules/{id} [delete]
func (h *scheduleHandler) deleteSchedule(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteSchedule(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// upcomingInstallments godoc
// @Summary Installments due soon
// @Tags installments
// @Produce  json
// @Param   days query int false "Look-ahead in days" default(7)
// @Success 200 {object} Response{data=[]dto.InstallmentResponse}
// @Security BearerAuth
// @Router /installments/upcoming [get]
func (h *scheduleHandler) upcomingInstallments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.UpcomingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	if params.Days == 0 {
		params.Days = dto.DefaultUpcomingDays
	}
	list, err := h.scheduleService.UpcomingInstallments(c.Request.Context(), actor, params.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInstallmentResponses(list, h.now()), "")
}

// overdueInstallments godoc
// @Summary Overdue installments
// @Tags installments
// @Produce  json
// @Success 200 {object} Response{data=[]dto.InstallmentResponse}
// @Security BearerAuth
// @Router /installments/overdue [get]
func (h *scheduleHandler) overdueInstallments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	list, err := h.scheduleService.OverdueInstallments(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInstallmentResponses(list, h.now()), "")
}

// payInstallment godoc
// @Summary Mark an installment paid
// @Description Paying the last pending installment completes the schedule.
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   id path string true "Installment ID"
// @Param   body body dto.PayInstallmentRequest false "Notes"
// @Success 200 {object} Response{data=dto.PayInstallmentResponse}
// @Failure 403 {object} Response "Schedule not active or installment already paid"
// @Security BearerAuth
// @Router /installments/{id}/pay [post]
func (h *scheduleHandler) payInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.PayInstallmentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	s, inst, err := h.scheduleService.MarkInstallmentPaid(c.Request.Context(), actor, c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	now := h.now()
	logger.Info("Installment paid", slog.String("installment_id", inst.InstallmentID), slog.String("schedule_status", string(s.Status)))
	respondOK(c, http.StatusOK, dto.PayInstallmentResponse{
		Installment: dto.ToInstallmentResponse(inst, now),
		Schedule:    dto.ToScheduleResponse(s, nil, now),
	}, "Installment paid")
}
