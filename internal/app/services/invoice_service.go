package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/dberrors"
	"github.com/seojin/hakwonhub/internal/pkg/helpers"
)

// InvoiceService manages invoices and payments
type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	studentRepo repositories.StudentRepository

	now func() time.Time
}

// NewInvoiceService creates a new invoice service instance
func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, studentRepo repositories.StudentRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// newInvoiceNumber builds a human-readable invoice reference
func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%d-%s", now.Year(), suffix)
}

// CreateInvoice creates an invoice with its line items. The total amount is
// always computed from the items; a discount line carries a negative amount.
func (s *InvoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required")
	}
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one invoice item is required")
	}

	if _, err := s.studentRepo.GetByID(ctx, tenantID, req.StudentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", req.StudentID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve student")
	}

	var total int64
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		itemType := models.InvoiceItemType(item.ItemType)
		if !itemType.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid item type %q", item.ItemType))
		}
		if itemType == models.ItemTypeDiscount && item.Amount > 0 {
			return nil, apperrors.NewValidationError("discount items must carry a negative amount")
		}
		if itemType != models.ItemTypeDiscount && item.Amount <= 0 {
			return nil, apperrors.NewValidationError("item amount must be positive")
		}
		total += item.Amount
		items = append(items, models.InvoiceItem{
			ItemType:    itemType,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	if total <= 0 {
		return nil, apperrors.NewValidationError("invoice total must be positive")
	}

	now := s.now()
	invoice := &models.Invoice{
		TenantID:      tenantID,
		StudentID:     req.StudentID,
		InvoiceNumber: newInvoiceNumber(now),
		TotalAmount:   total,
		Items:         items,
	}
	if req.DueDate != "" {
		due, err := helpers.ParseISODate(req.DueDate)
		if err != nil {
			return nil, apperrors.NewValidationError("due_date must be a valid date (YYYY-MM-DD)")
		}
		invoice.DueDate = &due
	}
	invoice.Recalculate(now)

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("invoice number collision, retry the request")
		}
		return nil, apperrors.NewDatabaseError("failed to create invoice")
	}

	resp := dto.NewInvoiceResponse(invoice)
	return &resp, nil
}

// GetInvoice retrieves an invoice with its items and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Invoice", id)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve invoice")
	}

	resp := dto.NewInvoiceResponse(invoice)
	return &resp, nil
}

// ListStudentInvoices lists a student's invoices, newest first
func (s *InvoiceService) ListStudentInvoices(ctx context.Context, tenantID, studentID string) ([]dto.InvoiceResponse, error) {
	if _, err := s.studentRepo.GetByID(ctx, tenantID, studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student", studentID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve student")
	}

	invoices, err := s.invoiceRepo.FindByStudent(ctx, tenantID, studentID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list invoices")
	}

	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, dto.NewInvoiceResponse(invoice))
	}
	return out, nil
}

// RecordPayment records a payment against an invoice and returns the invoice
// with its refreshed status. Paying an already settled invoice or paying more
// than the outstanding balance is a conflict.
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID, invoiceID string, req dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Invoice", invoiceID)
		}
		return nil, apperrors.NewDatabaseError("failed to retrieve invoice")
	}

	if invoice.Status == models.InvoiceStatusPaid {
		return nil, apperrors.NewConflictError("invoice is already fully paid")
	}
	if req.Amount > invoice.TotalAmount-invoice.PaidAmount {
		return nil, apperrors.NewConflictError("payment exceeds the outstanding balance")
	}

	payment := &models.Payment{
		TenantID:  tenantID,
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    s.now(),
	}

	updated, err := s.invoiceRepo.RecordPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Invoice", invoiceID)
		}
		return nil, apperrors.NewDatabaseError("failed to record payment")
	}

	resp := dto.NewInvoiceResponse(updated)
	return &resp, nil
}
