package handlers

import (
	"net/http"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/gin-gonic/gin"
)

type interviewHandler struct {
	interviewService portssvc.InterviewSvcFacade
}

func registerInterviewRoutes(rg *gin.RouterGroup, interviewService portssvc.InterviewSvcFacade) {
	h := &interviewHandler{interviewService: interviewService}

	interviews := rg.Group("/interviews")
	{
		interviews.POST("", h.scheduleInterview)
		interviews.GET("/:id", h.getInterview)
		interviews.POST("/:id/complete", h.completeInterview)
		interviews.POST("/:id/cancel", h.cancelInterview)
		interviews.POST("/:id/reschedule", h.rescheduleInterview)
	}
}

// scheduleInterview godoc
// @Summary Schedule an interview
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   interview body dto.CreateInterviewRequest true "Interview"
// @Success 201 {object} Response{data=dto.InterviewResponse}
// @Security BearerAuth
// @Router /interviews [post]
func (h *interviewHandler) scheduleInterview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	iv, err := h.interviewService.ScheduleInterview(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.ToInterviewResponse(iv), "Interview scheduled")
}

// getInterview godoc
// @Summary Get an interview
// @Tags interviews
// @Produce  json
// @Param   id path string true "Interview ID"
// @Success 200 {object} Response{data=dto.InterviewResponse}
// @Failure 404 {object} Response "Interview not found"
// @Security BearerAuth
// @Router /interviews/{id} [get]
func (h *interviewHandler) getInterview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	iv, err := h.interviewService.GetInterviewByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInterviewResponse(iv), "")
}

// completeInterview godoc
// @Summary Complete an interview
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   id path string true "Interview ID"
// @Param   body body dto.CompleteInterviewRequest false "Feedback"
// @Success 200 {object} Response{data=dto.InterviewResponse}
// @Failure 400 {object} Response "Interview is not scheduled"
// @Security BearerAuth
// @Router /interviews/{id}/complete [post]
func (h *interviewHandler) completeInterview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CompleteInterviewRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	iv, err := h.interviewService.CompleteInterview(c.Request.Context(), actor, c.Param("id"), req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInterviewResponse(iv), "Interview completed")
}

// cancelInterview godoc
// @Summary Cancel an interview
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   id path string true "Interview ID"
// @Param   body body dto.CancelInterviewRequest false "Reason"
// @Success 200 {object} Response{data=dto.InterviewResponse}
// @Failure 400 {object} Response "Interview is not scheduled"
// @Security BearerAuth
// @Router /interviews/{id}/cancel [post]
func (h *interviewHandler) cancelInterview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CancelInterviewRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	iv, err := h.interviewService.CancelInterview(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInterviewResponse(iv), "Interview cancelled")
}

// rescheduleInterview godoc
// @Summary Move an interview to another slot
// @Tags interviews
// @Accept  json
// @Produce  json
// @Param   id path string true "Interview ID"
// @Param   body body dto.RescheduleInterviewRequest true "New slot"
// @Success 200 {object} Response{data=dto.InterviewResponse}
// @Failure 400 {object} Response "Interview is not scheduled"
// @Security BearerAuth
// @Router /interviews/{id}/reschedule [post]
func (h *interviewHandler) rescheduleInterview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.RescheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	iv, err := h.interviewService.RescheduleInterview(c.Request.Context(), actor, c.Param("id"), domain.Reschedule{
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Type:        domain.InterviewType(req.Type),
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInterviewResponse(iv), "Interview rescheduled")
}
