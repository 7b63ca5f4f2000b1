package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:id", h.getPayment)
		for _, action := range []domain.Action{
			domain.ActionSubmit, domain.ActionApprove, domain.ActionValidate,
			domain.ActionReject, domain.ActionPay, domain.ActionReactivate,
		} {
			payments.POST("/:id/"+string(action), h.transitionPayment(action))
		}
	}
}

// createPayment godoc
// @Summary Create a payment
// @Description Creates a draft payment. Monthly payments get a payment schedule in the same transaction.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} Response{data=dto.CreatePaymentResponse}
// @Failure 400 {object} Response "Invalid input format"
// @Failure 403 {object} Response "Role not allowed"
// @Failure 422 {object} Response "Validation error"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, schedule, err := h.paymentService.CreatePayment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CreatePaymentResponse{Payment: dto.ToPaymentResponse(payment)}
	if schedule != nil {
		s := dto.ToScheduleResponse(schedule, nil, time.Now())
		resp.Schedule = &s
	}
	logger.Info("Payment created", slog.String("payment_id", payment.PaymentID), slog.String("payment_number", payment.PaymentNumber))
	respondOK(c, http.StatusCreated, resp, "Payment created")
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} Response{data=dto.PaymentResponse}
// @Failure 404 {object} Response "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToPaymentResponse(payment), "")
}

// listPayments godoc
// @Summary List payments
// @Description Newest first, keyset paginated.
// @Tags payments
// @Produce  json
// @Param   status query string false "Status filter"
// @Param   invoiceID query string false "Invoice filter"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} Response{data=dto.Page[dto.PaymentResponse]}
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.PaymentListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	filter := portsrepo.PaymentFilter{
		Status:    optional[domain.PaymentStatus](params.Status),
		InvoiceID: optional[string](params.InvoiceID),
	}
	payments, next, err := h.paymentService.ListPayments(c.Request.Context(), actor, filter, toListParams(params.ListParams))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.Page[dto.PaymentResponse]{Items: dto.ToPaymentResponses(payments), NextToken: next}, "")
}

// transitionPayment godoc
// @Summary Change the status of a payment
// @Description submit, approve, validate, reject, pay or reactivate. Approve, validate and pay also settle the linked invoice; rejecting an approved payment reopens it.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment ID"
// @Param   body body dto.TransitionRequest false "Comment or rejection reason"
// @Success 200 {object} Response{data=dto.PaymentResponse}
// @Failure 400 {object} Response "Transition not allowed from the current status"
// @Failure 403 {object} Response "Role not allowed"
// @Failure 409 {object} Response "Concurrent modification"
// @Security BearerAuth
// @Router /payments/{id}/{action} [post]
func (h *paymentHandler) transitionPayment(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var req dto.TransitionRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			respondBindError(c, err)
			return
		}

		payment, err := h.paymentService.TransitionPayment(c.Request.Context(), actor, c.Param("id"), action, transitionMeta(req))
		if err != nil {
			respondError(c, err)
			return
		}
		logger.Info("Payment transitioned", slog.String("payment_id", payment.PaymentID), slog.String("action", string(action)), slog.String("status", string(payment.Status)))
		respondOK(c, http.StatusOK, dto.ToPaymentResponse(payment), "Payment "+string(payment.Status))
	}
}
