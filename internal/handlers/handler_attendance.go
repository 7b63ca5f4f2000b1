package handlers

import (
	"log/slog"
	"net/http"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/gin-gonic/gin"
)

type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

func newAttendanceHandler(as portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{attendanceService: as}
}

func registerAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	attendances := rg.Group("/attendances")
	{
		attendances.POST("/punch", h.punch)
		attendances.GET("", h.listAttendances)
		attendances.GET("/:id", h.getAttendance)
		attendances.POST("/:id/approve", h.transitionAttendance(domain.ActionApprove))
		attendances.POST("/:id/reject", h.transitionAttendance(domain.ActionReject))
	}
}

// punch godoc
// @Summary Check in or check out
// @Description Records a punch for the caller. Punches must alternate, starting with check_in.
// @Tags attendances
// @Accept  json
// @Produce  json
// @Param   punch body dto.PunchRequest true "Punch"
// @Success 201 {object} Response{data=dto.AttendanceResponse}
// @Failure 400 {object} Response "Punch out of sequence"
// @Security BearerAuth
// @Router /attendances/punch [post]
func (h *attendanceHandler) punch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	a, err := h.attendanceService.Punch(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Punch recorded", slog.String("attendance_id", a.AttendanceID), slog.String("type", string(a.Type)))
	respondOK(c, http.StatusCreated, dto.ToAttendanceResponse(a), "Punch recorded")
}

// getAttendance godoc
// @Summary Get a punch
// @Tags attendances
// @Produce  json
// @Param   id path string true "Attendance ID"
// @Success 200 {object} Response{data=dto.AttendanceResponse}
// @Failure 403 {object} Response "Punch of another user"
// @Failure 404 {object} Response "Punch not found"
// @Security BearerAuth
// @Router /attendances/{id} [get]
func (h *attendanceHandler) getAttendance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	a, err := h.attendanceService.GetAttendanceByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToAttendanceResponse(a), "")
}

// listAttendances godoc
// @Summary List punches
// @Description Reviewers may list any user; everyone else only sees their own punches.
// @Tags attendances
// @Produce  json
// @Param   userID query string false "User filter"
// @Param   status query string false "Status filter"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} Response{data=dto.Page[dto.AttendanceResponse]}
// @Security BearerAuth
// @Router /attendances [get]
func (h *attendanceHandler) listAttendances(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.AttendanceListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	filter := portsrepo.AttendanceFilter{
		UserID: optional[string](params.UserID),
		Status: optional[domain.AttendanceStatus](params.Status),
	}
	list, next, err := h.attendanceService.ListAttendances(c.Request.Context(), actor, filter, toListParams(params.ListParams))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.Page[dto.AttendanceResponse]{Items: dto.ToAttendanceResponses(list), NextToken: next}, "")
}

// transitionAttendance godoc
// @Summary Approve or reject a punch
// @Tags attendances
// @Accept  json
// @Produce  json
// @Param   id path string true "Attendance ID"
// @Param   body body dto.TransitionRequest false "Comment or rejection reason"
// @Success 200 {object} Response{data=dto.AttendanceResponse}
// @Failure 400 {object} Response "Punch already reviewed"
// @Failure 403 {object} Response "Role not allowed"
// @Security BearerAuth
// @Router /attendances/{id}/{action} [post]
func (h *attendanceHandler) transitionAttendance(action domain.Action) gin.HandlerFunc {
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
		a, err := h.attendanceService.TransitionAttendance(c.Request.Context(), actor, c.Param("id"), action, transitionMeta(req))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, dto.ToAttendanceResponse(a), "Punch "+string(a.Status))
	}
}
