package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seojin/hakwonhub/internal/app/models"
)

// InvoiceRepository abstracts persistent storage for invoices, their line
// items and payments.
type InvoiceRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*models.Invoice, error)
	FindByStudent(ctx context.Context, tenantID, studentID string) ([]*models.Invoice, error)
	CreateWithItems(ctx context.Context, invoice *models.Invoice) error
	RecordPayment(ctx context.Context, payment *models.Payment) (*models.Invoice, error)
}

type invoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, tenant_id, student_id, invoice_number, status,
	total_amount, paid_amount, due_date, created_at, updated_at, deleted_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID, &inv.TenantID, &inv.StudentID, &inv.InvoiceNumber, &inv.Status,
		&inv.TotalAmount, &inv.PaidAmount, &inv.DueDate,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByID retrieves an invoice with its line items and payments
func (r *invoiceRepository) GetByID(ctx context.Context, tenantID, id string) (*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	inv, err := scanInvoice(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, inv); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (r *invoiceRepository) loadItems(ctx context.Context, inv *models.Invoice) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, invoice_id, item_type, description, amount, created_at
		FROM invoice_items
		WHERE tenant_id = $1 AND invoice_id = $2
		ORDER BY created_at`,
		inv.TenantID, inv.ID)
	if err != nil {
		return fmt.Errorf("error loading invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(
			&item.ID, &item.TenantID, &item.InvoiceID, &item.ItemType,
			&item.Description, &item.Amount, &item.CreatedAt,
		); err != nil {
			return err
		}
		inv.Items = append(inv.Items, item)
	}
	return rows.Err()
}

func (r *invoiceRepository) loadPayments(ctx context.Context, inv *models.Invoice) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, invoice_id, amount, method, paid_at, created_at
		FROM payments
		WHERE tenant_id = $1 AND invoice_id = $2
		ORDER BY paid_at`,
		inv.TenantID, inv.ID)
	if err != nil {
		return fmt.Errorf("error loading payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.InvoiceID, &p.Amount, &p.Method, &p.PaidAt, &p.CreatedAt,
		); err != nil {
			return err
		}
		inv.Payments = append(inv.Payments, p)
	}
	return rows.Err()
}

// FindByStudent lists a student's invoices, newest first
func (r *invoiceRepository) FindByStudent(ctx context.Context, tenantID, studentID string) ([]*models.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND student_id = $2 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, tenantID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// CreateWithItems inserts the invoice and its line items atomically. The
// caller supplies TotalAmount already computed from the items.
func (r *invoiceRepository) CreateWithItems(ctx context.Context, invoice *models.Invoice) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (tenant_id, student_id, invoice_number, status,
			total_amount, paid_amount, due_date)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
		RETURNING id, created_at, updated_at`,
		invoice.TenantID, invoice.StudentID, invoice.InvoiceNumber, invoice.Status,
		invoice.TotalAmount, invoice.DueDate,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range invoice.Items {
		item := &invoice.Items[i]
		item.TenantID = invoice.TenantID
		item.InvoiceID = invoice.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO invoice_items (tenant_id, invoice_id, item_type, description, amount)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			item.TenantID, item.InvoiceID, item.ItemType, item.Description, item.Amount,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// RecordPayment inserts the payment and refreshes the invoice's accumulated
// amount and derived status in one transaction.
func (r *invoiceRepository) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Invoice, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := scanInvoice(tx.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL
		FOR UPDATE`,
		payment.TenantID, payment.InvoiceID))
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO payments (tenant_id, invoice_id, amount, method, paid_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		payment.TenantID, payment.InvoiceID, payment.Amount, payment.Method, payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	inv.PaidAmount += payment.Amount
	inv.Recalculate(time.Now())

	err = tx.QueryRow(ctx, `
		UPDATE invoices
		SET paid_amount = $3, status = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING updated_at`,
		inv.TenantID, inv.ID, inv.PaidAmount, inv.Status,
	).Scan(&inv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
