package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// InvoiceController handles billing operations
type InvoiceController struct {
	invoiceService *services.InvoiceService
}

// NewInvoiceController creates a new InvoiceController
func NewInvoiceController(invoiceService *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoiceService: invoiceService}
}

// CreateInvoice creates an invoice with its line items
// @Summary Create an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInvoiceRequest true "Invoice information"
// @Success 201 {object} dto.APIResponse{data=dto.InvoiceResponse}
// @Router /invoices [post]
func (c *InvoiceController) CreateInvoice(ctx *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.invoiceService.CreateInvoice(ctx, middleware.TenantID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetInvoice retrieves an invoice with its items and payments
func (c *InvoiceController) GetInvoice(ctx *gin.Context) {
	resp, err := c.invoiceService.GetInvoice(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListStudentInvoices lists a student's invoices
func (c *InvoiceController) ListStudentInvoices(ctx *gin.Context) {
	resp, err := c.invoiceService.ListStudentInvoices(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// RecordPayment records a payment against an invoice
// @Summary Record a payment
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param request body dto.RecordPaymentRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=dto.InvoiceResponse}
// @Failure 409 {object} dto.ErrorResponse "Invoice already settled"
// @Router /invoices/{id}/payments [post]
func (c *InvoiceController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.invoiceService.RecordPayment(ctx, middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}
