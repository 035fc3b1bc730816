package dto

import (
	"time"

	"github.com/seojin/hakwonhub/internal/app/models"
)

// InvoiceItemRequest is one line item in an invoice creation payload
type InvoiceItemRequest struct {
	ItemType    string `json:"item_type" binding:"required,oneof=tuition material extra discount"`
	Description string `json:"description" binding:"required,max=200"`
	Amount      int64  `json:"amount" binding:"required"`
}

// CreateInvoiceRequest creates an invoice with its line items. The total is
// computed from the items, never taken from the client.
type CreateInvoiceRequest struct {
	StudentID string               `json:"student_id" binding:"required,uuid4"`
	DueDate   string               `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Items     []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordPaymentRequest records a payment against an invoice
type RecordPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Method string `json:"method" binding:"required,oneof=card cash transfer"`
}

// InvoiceItemResponse is the output shape for a line item
type InvoiceItemResponse struct {
	ID          string `json:"id"`
	ItemType    string `json:"itemType"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// PaymentResponse is the output shape for a payment
type PaymentResponse struct {
	ID     string    `json:"id"`
	Amount int64     `json:"amount"`
	Method string    `json:"method"`
	PaidAt time.Time `json:"paidAt"`
}

// InvoiceResponse is the output shape for an invoice with its aggregates
type InvoiceResponse struct {
	ID            string                `json:"id"`
	TenantID      string                `json:"tenantId"`
	StudentID     string                `json:"studentId"`
	InvoiceNumber string                `json:"invoiceNumber"`
	Status        string                `json:"status"`
	TotalAmount   int64                 `json:"totalAmount"`
	PaidAmount    int64                 `json:"paidAmount"`
	DueDate       *time.Time            `json:"dueDate,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	Payments      []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// NewInvoiceResponse maps a domain invoice to its output DTO
func NewInvoiceResponse(inv *models.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		StudentID:     inv.StudentID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		TotalAmount:   inv.TotalAmount,
		PaidAmount:    inv.PaidAmount,
		DueDate:       inv.DueDate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ID:          item.ID,
			ItemType:    string(item.ItemType),
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:     p.ID,
			Amount: p.Amount,
			Method: p.Method,
			PaidAt: p.PaidAt,
		})
	}
	return resp
}
