package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/hakwonhub/internal/app/models"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

func newInvoiceFixture(t *testing.T) (*InvoiceService, *fakeInvoiceRepo, *models.Student) {
	t.Helper()
	invRepo := newFakeInvoiceRepo()
	studentRepo := newFakeStudentRepo()
	student := studentRepo.add(&models.Student{TenantID: testTenant, Name: "Kim Minjun"})
	svc := NewInvoiceService(invRepo, studentRepo)
	svc.now = func() time.Time { return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC) }
	return svc, invRepo, student
}

func TestCreateInvoice_TotalFromItems(t *testing.T) {
	svc, _, student := newInvoiceFixture(t)

	resp, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: student.ID,
		DueDate:   "2026-09-10",
		Items: []dto.InvoiceItemRequest{
			{ItemType: "tuition", Description: "August tuition", Amount: 450000},
			{ItemType: "material", Description: "Workbook", Amount: 30000},
			{ItemType: "discount", Description: "Sibling discount", Amount: -50000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(430000), resp.TotalAmount)
	assert.Equal(t, int64(0), resp.PaidAmount)
	assert.Equal(t, string(models.InvoiceStatusUnpaid), resp.Status)
	assert.Contains(t, resp.InvoiceNumber, "INV-2026-")
	assert.Len(t, resp.Items, 3)
}

func TestCreateInvoice_UnknownStudent(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)

	_, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: "missing",
		Items:     []dto.InvoiceItemRequest{{ItemType: "tuition", Description: "t", Amount: 1000}},
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestCreateInvoice_RejectsPositiveDiscount(t *testing.T) {
	svc, _, student := newInvoiceFixture(t)

	_, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: student.ID,
		Items: []dto.InvoiceItemRequest{
			{ItemType: "tuition", Description: "August tuition", Amount: 450000},
			{ItemType: "discount", Description: "Sibling discount", Amount: 50000},
		},
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestCreateInvoice_RejectsNonPositiveTotal(t *testing.T) {
	svc, _, student := newInvoiceFixture(t)

	_, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: student.ID,
		Items: []dto.InvoiceItemRequest{
			{ItemType: "tuition", Description: "August tuition", Amount: 50000},
			{ItemType: "discount", Description: "Full waiver", Amount: -50000},
		},
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	svc, _, student := newInvoiceFixture(t)

	inv, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: student.ID,
		Items:     []dto.InvoiceItemRequest{{ItemType: "tuition", Description: "August tuition", Amount: 400000}},
	})
	require.NoError(t, err)

	partial, err := svc.RecordPayment(context.Background(), testTenant, inv.ID, dto.RecordPaymentRequest{
		Amount: 150000,
		Method: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.InvoiceStatusPartiallyPaid), partial.Status)
	assert.Equal(t, int64(150000), partial.PaidAmount)

	settled, err := svc.RecordPayment(context.Background(), testTenant, inv.ID, dto.RecordPaymentRequest{
		Amount: 250000,
		Method: "transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.InvoiceStatusPaid), settled.Status)
	assert.Equal(t, int64(400000), settled.PaidAmount)
	assert.Len(t, settled.Payments, 2)
}

func TestRecordPayment_SettledInvoiceConflicts(t *testing.T) {
	svc, _, student := newInvoiceFixture(t)

	inv, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: student.ID,
		Items:     []dto.InvoiceItemRequest{{ItemType: "tuition", Description: "August tuition", Amount: 100000}},
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), testTenant, inv.ID, dto.RecordPaymentRequest{Amount: 100000, Method: "cash"})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), testTenant, inv.ID, dto.RecordPaymentRequest{Amount: 1000, Method: "cash"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestRecordPayment_OverpaymentConflicts(t *testing.T) {
	svc, _, student := newInvoiceFixture(t)

	inv, err := svc.CreateInvoice(context.Background(), testTenant, dto.CreateInvoiceRequest{
		StudentID: student.ID,
		Items:     []dto.InvoiceItemRequest{{ItemType: "tuition", Description: "August tuition", Amount: 100000}},
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), testTenant, inv.ID, dto.RecordPaymentRequest{Amount: 120000, Method: "card"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestRecordPayment_UnknownInvoice(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)

	_, err := svc.RecordPayment(context.Background(), testTenant, "missing", dto.RecordPaymentRequest{Amount: 1000, Method: "card"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetInvoice_PastDueIsOverdue(t *testing.T) {
	svc, repo, student := newInvoiceFixture(t)
	due := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	inv := repo.add(&models.Invoice{
		TenantID:    testTenant,
		StudentID:   student.ID,
		TotalAmount: 100000,
		Status:      models.InvoiceStatusOverdue,
		DueDate:     &due,
	})

	resp, err := svc.GetInvoice(context.Background(), testTenant, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.InvoiceStatusOverdue), resp.Status)
}
