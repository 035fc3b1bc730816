package models

import "time"

// InvoiceStatus is derived from paid_amount vs total_amount, with overdue
// additionally gated by the due date.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
)

// InvoiceItemType categorizes invoice line items
type InvoiceItemType string

const (
	ItemTypeTuition  InvoiceItemType = "tuition"
	ItemTypeMaterial InvoiceItemType = "material"
	ItemTypeExtra    InvoiceItemType = "extra"
	ItemTypeDiscount InvoiceItemType = "discount"
)

// Valid returns true when the item type is a supported value.
func (t InvoiceItemType) Valid() bool {
	switch t {
	case ItemTypeTuition, ItemTypeMaterial, ItemTypeExtra, ItemTypeDiscount:
		return true
	default:
		return false
	}
}

// Invoice defines the invoice model based on the 'invoices' table. Amounts
// are stored in KRW as integer won.
type Invoice struct {
	ID            string        `json:"id" db:"id"`
	TenantID      string        `json:"tenantId" db:"tenant_id"`
	StudentID     string        `json:"studentId" db:"student_id"`
	InvoiceNumber string        `json:"invoiceNumber" db:"invoice_number" example:"INV-2024-0042"`
	Status        InvoiceStatus `json:"status" db:"status"`
	TotalAmount   int64         `json:"totalAmount" db:"total_amount"`
	PaidAmount    int64         `json:"paidAmount" db:"paid_amount"`
	DueDate       *time.Time    `json:"dueDate,omitempty" db:"due_date"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	// Populated when fetching a full invoice
	Items    []InvoiceItem `json:"items,omitempty"`
	Payments []Payment     `json:"payments,omitempty"`
}

// InvoiceItem defines a line item based on the 'invoice_items' table.
// Discount items carry a negative amount.
type InvoiceItem struct {
	ID          string          `json:"id" db:"id"`
	TenantID    string          `json:"tenantId" db:"tenant_id"`
	InvoiceID   string          `json:"invoiceId" db:"invoice_id"`
	ItemType    InvoiceItemType `json:"itemType" db:"item_type"`
	Description string          `json:"description" db:"description"`
	Amount      int64           `json:"amount" db:"amount"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// Payment defines a payment based on the 'payments' table
type Payment struct {
	ID        string    `json:"id" db:"id"`
	TenantID  string    `json:"tenantId" db:"tenant_id"`
	InvoiceID string    `json:"invoiceId" db:"invoice_id"`
	Amount    int64     `json:"amount" db:"amount"`
	Method    string    `json:"method" db:"method" example:"card"`
	PaidAt    time.Time `json:"paidAt" db:"paid_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// DeriveInvoiceStatus computes the invoice status from its amounts and due
// date. This is the single place the derivation lives; callers pass the
// current time so the rule stays testable. An invoice is overdue only once
// the whole due day has passed; paying on the due date is on time.
func DeriveInvoiceStatus(totalAmount, paidAmount int64, dueDate *time.Time, now time.Time) InvoiceStatus {
	if totalAmount > 0 && paidAmount >= totalAmount {
		return InvoiceStatusPaid
	}
	if dueDate != nil && !now.Before(dueDate.AddDate(0, 0, 1)) {
		return InvoiceStatusOverdue
	}
	if paidAmount > 0 {
		return InvoiceStatusPartiallyPaid
	}
	return InvoiceStatusUnpaid
}

// Recalculate refreshes the derived status on the invoice.
func (i *Invoice) Recalculate(now time.Time) {
	i.Status = DeriveInvoiceStatus(i.TotalAmount, i.PaidAmount, i.DueDate, now)
}
