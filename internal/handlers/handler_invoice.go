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

type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/pay", h.payInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=dto.InvoiceResponse}
// @Failure 409 {object} Response "Invoice number already used"
// @Failure 422 {object} Response "Validation error"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID))
	respondOK(c, http.StatusCreated, dto.ToInvoiceResponse(invoice), "Invoice created")
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} Response{data=dto.InvoiceResponse}
// @Failure 404 {object} Response "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInvoiceResponse(invoice), "")
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   status query string false "Status filter"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} Response{data=dto.Page[dto.InvoiceResponse]}
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	invoices, next, err := h.invoiceService.ListInvoices(c.Request.Context(), actor, optional[domain.InvoiceStatus](params.Status), toListParams(params))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.Page[dto.InvoiceResponse]{Items: dto.ToInvoiceResponses(invoices), NextToken: next}, "")
}

// payInvoice godoc
// @Summary Mark an invoice paid
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} Response{data=dto.InvoiceResponse}
// @Failure 400 {object} Response "Invoice already paid"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *invoiceHandler) payInvoice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.TransitionInvoice(c.Request.Context(), actor, c.Param("id"), domain.ActionPay)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToInvoiceResponse(invoice), "Invoice paid")
}
