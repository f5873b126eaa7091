package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AhmedGad3/construction-erp/internal/core"

	"github.com/shopspring/decimal"
)

func seedSupplier(t *testing.T, svc core.SupplierService, name string) int {
	t.Helper()
	s, err := svc.CreateSupplier(context.Background(), core.SupplierInput{
		Name:     name,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed supplier %q: %v", name, err)
	}
	return s.ID
}

func TestInvoiceService_CreateAndFetch(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	suppliers := core.NewSupplierService(pool)
	invoices := core.NewInvoiceService(pool, suppliers)

	supplierID := seedSupplier(t, suppliers, "Nile Materials Co.")

	input := core.InvoiceInput{
		SupplierID:    supplierID,
		InvoiceNumber: "INV-2024-001",
		InvoiceDate:   "2024-10-01",
		PaymentType:   "credit",
		DueDate:       "2024-11-30",
		Items: []core.InvoiceItemInput{
			{ItemName: "Cement", ItemNameAr: "أسمنت", Quantity: "100", UnitPrice: "850"},
			{ItemName: "Sand", ItemNameAr: "رمل", Quantity: "50", UnitPrice: "200"},
		},
		CreatedBy: "Admin",
	}

	inv, err := invoices.CreateInvoice(ctx, input)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !inv.TotalAmount.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("total = %s, want 95000", inv.TotalAmount)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(inv.Items))
	}
	if inv.Status != core.StatusPending {
		t.Errorf("status = %s, want pending", inv.Status)
	}

	t.Run("Get_RoundTrip", func(t *testing.T) {
		got, err := invoices.GetInvoice(ctx, inv.ID)
		if err != nil {
			t.Fatalf("GetInvoice: %v", err)
		}
		if got.InvoiceNumber != "INV-2024-001" {
			t.Errorf("number = %s", got.InvoiceNumber)
		}
		if len(got.Items) != 2 {
			t.Errorf("expected 2 items, got %d", len(got.Items))
		}
		if got.Items[0].ItemName.Ar != "أسمنت" {
			t.Errorf("arabic item name lost: %+v", got.Items[0].ItemName)
		}
	})

	t.Run("Create_UnknownSupplier", func(t *testing.T) {
		bad := input
		bad.SupplierID = 9999
		_, err := invoices.CreateInvoice(ctx, bad)
		if !errors.Is(err, core.ErrUnknownSupplier) {
			t.Errorf("expected ErrUnknownSupplier, got %v", err)
		}
	})

	t.Run("Update_ReplacesItems", func(t *testing.T) {
		upd := input
		upd.Items = []core.InvoiceItemInput{
			{ItemName: "Gravel", Quantity: "30", UnitPrice: "300"},
		}
		got, err := invoices.UpdateInvoice(ctx, inv.ID, upd)
		if err != nil {
			t.Fatalf("UpdateInvoice: %v", err)
		}
		if len(got.Items) != 1 || got.Items[0].ItemName.En != "Gravel" {
			t.Errorf("items not replaced: %+v", got.Items)
		}
		if !got.TotalAmount.Equal(decimal.NewFromInt(9000)) {
			t.Errorf("total = %s, want 9000", got.TotalAmount)
		}
	})

	t.Run("MarkPaid_SurvivesUpdate", func(t *testing.T) {
		if _, err := invoices.MarkPaid(ctx, inv.ID); err != nil {
			t.Fatalf("MarkPaid: %v", err)
		}
		got, err := invoices.UpdateInvoice(ctx, inv.ID, input)
		if err != nil {
			t.Fatalf("UpdateInvoice after MarkPaid: %v", err)
		}
		if got.Status != core.StatusPaid {
			t.Errorf("paid mark lost on update: status = %s", got.Status)
		}
	})

	t.Run("Delete_CascadesItems", func(t *testing.T) {
		if err := invoices.DeleteInvoice(ctx, inv.ID); err != nil {
			t.Fatalf("DeleteInvoice: %v", err)
		}
		var count int
		if err := pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM invoice_items WHERE invoice_id = $1", inv.ID,
		).Scan(&count); err != nil {
			t.Fatalf("count items: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 orphaned items, got %d", count)
		}
	})
}

func TestPaymentService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	suppliers := core.NewSupplierService(pool)
	payments := core.NewPaymentService(pool, suppliers)

	supplierID := seedSupplier(t, suppliers, "Ahram Steel")

	p, err := payments.CreatePayment(ctx, core.PaymentInput{
		SupplierID:      supplierID,
		Amount:          "45000",
		PaymentDate:     "2024-10-15",
		PaymentMethod:   "bank_transfer",
		ReferenceNumber: "TRF-2024-001",
		CreatedBy:       "Admin",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if !p.Amount.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("amount = %s, want 45000", p.Amount)
	}
	if p.PaymentMethod != core.MethodBankTransfer {
		t.Errorf("method = %s, want bank_transfer", p.PaymentMethod)
	}

	t.Run("Create_UnknownSupplier", func(t *testing.T) {
		_, err := payments.CreatePayment(ctx, core.PaymentInput{
			SupplierID:    9999,
			Amount:        "100",
			PaymentDate:   "2024-10-15",
			PaymentMethod: "cash",
		})
		if !errors.Is(err, core.ErrUnknownSupplier) {
			t.Errorf("expected ErrUnknownSupplier, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		got, err := payments.UpdatePayment(ctx, p.ID, core.PaymentInput{
			SupplierID:      supplierID,
			Amount:          "50000",
			PaymentDate:     "2024-10-16",
			PaymentMethod:   "check",
			ReferenceNumber: "CHK-2024-001",
		})
		if err != nil {
			t.Fatalf("UpdatePayment: %v", err)
		}
		if !got.Amount.Equal(decimal.NewFromInt(50000)) || got.PaymentMethod != core.MethodCheck {
			t.Errorf("update not applied: %+v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := payments.DeletePayment(ctx, p.ID); err != nil {
			t.Fatalf("DeletePayment: %v", err)
		}
		if _, err := payments.GetPayment(ctx, p.ID); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}
