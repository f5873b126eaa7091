package core_test

import (
	"context"
	"testing"

	"github.com/AhmedGad3/construction-erp/internal/core"

	"github.com/shopspring/decimal"
)

func TestReportingService_EndToEnd(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	suppliers := core.NewSupplierService(pool)
	invoices := core.NewInvoiceService(pool, suppliers)
	payments := core.NewPaymentService(pool, suppliers)
	reporting := core.NewReportingService(suppliers, invoices, payments)

	nileID := seedSupplier(t, suppliers, "Nile Materials Co.")
	ahramID := seedSupplier(t, suppliers, "Ahram Steel")

	mustInvoice := func(in core.InvoiceInput) *core.Invoice {
		t.Helper()
		inv, err := invoices.CreateInvoice(ctx, in)
		if err != nil {
			t.Fatalf("CreateInvoice %s: %v", in.InvoiceNumber, err)
		}
		return inv
	}

	mustInvoice(core.InvoiceInput{
		SupplierID: nileID, InvoiceNumber: "INV-001", InvoiceDate: "2024-10-01",
		PaymentType: "credit", DueDate: "2024-11-30",
		Items: []core.InvoiceItemInput{{ItemName: "Cement", Quantity: "100", UnitPrice: "950"}},
	})
	mustInvoice(core.InvoiceInput{
		SupplierID: ahramID, InvoiceNumber: "INV-002", InvoiceDate: "2024-09-15",
		PaymentType: "credit", DueDate: "2024-11-14",
		Items: []core.InvoiceItemInput{{ItemName: "Steel Bars", Quantity: "20", UnitPrice: "5000"}},
	})

	if _, err := payments.CreatePayment(ctx, core.PaymentInput{
		SupplierID: nileID, Amount: "45000", PaymentDate: "2024-10-15",
		PaymentMethod: "bank_transfer", ReferenceNumber: "TRF-001",
	}); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	t.Run("SupplierStatement", func(t *testing.T) {
		report, err := reporting.GetSupplierStatement(ctx, nileID, nil, nil)
		if err != nil {
			t.Fatalf("GetSupplierStatement: %v", err)
		}
		if len(report.Statement.Transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(report.Statement.Transactions))
		}
		if !report.Statement.ClosingBalance.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("closing = %s, want 50000", report.Statement.ClosingBalance)
		}
		if !report.Balance.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("balance = %s, want 50000", report.Balance)
		}
		if report.Supplier.Name.En != "Nile Materials Co." {
			t.Errorf("supplier = %q", report.Supplier.Name.En)
		}
	})

	t.Run("FinancialMovements", func(t *testing.T) {
		stmt, err := reporting.GetFinancialMovements(ctx, nil, nil)
		if err != nil {
			t.Fatalf("GetFinancialMovements: %v", err)
		}
		if len(stmt.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(stmt.Transactions))
		}
		if !stmt.ClosingBalance.Equal(decimal.NewFromInt(150000)) {
			t.Errorf("closing = %s, want 150000", stmt.ClosingBalance)
		}
	})

	t.Run("MonthlySummary", func(t *testing.T) {
		buckets, err := reporting.GetMonthlySummary(ctx)
		if err != nil {
			t.Fatalf("GetMonthlySummary: %v", err)
		}
		if len(buckets) != 2 || buckets[0].Month != "2024-09" {
			t.Fatalf("unexpected buckets: %+v", buckets)
		}
		if !buckets[1].Payments.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("2024-10 payments = %s, want 45000", buckets[1].Payments)
		}
	})

	t.Run("TopSuppliers", func(t *testing.T) {
		standings, err := reporting.GetTopSuppliers(ctx, 5)
		if err != nil {
			t.Fatalf("GetTopSuppliers: %v", err)
		}
		if len(standings) != 2 {
			t.Fatalf("expected 2 standings, got %d", len(standings))
		}
		if standings[0].SupplierID != ahramID {
			t.Errorf("expected Ahram Steel first (100000 owed), got supplier %d", standings[0].SupplierID)
		}
	})

	t.Run("Dashboard", func(t *testing.T) {
		report, err := reporting.GetDashboard(ctx)
		if err != nil {
			t.Fatalf("GetDashboard: %v", err)
		}
		if !report.Summary.TotalOutstanding.Equal(decimal.NewFromInt(145000)) {
			t.Errorf("total outstanding = %s, want 145000", report.Summary.TotalOutstanding)
		}
		if report.Summary.ActiveSuppliers != 2 {
			t.Errorf("active suppliers = %d, want 2", report.Summary.ActiveSuppliers)
		}
		if len(report.RecentActivity) == 0 {
			t.Error("expected recent activity entries")
		}
	})

	t.Run("Supplies", func(t *testing.T) {
		usage, err := reporting.GetSupplies(ctx)
		if err != nil {
			t.Fatalf("GetSupplies: %v", err)
		}
		if len(usage) != 2 {
			t.Fatalf("expected 2 distinct supplies, got %d", len(usage))
		}
	})
}

func TestInventoryService_StockDerivation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	inventory := core.NewInventoryService(pool)

	wh, err := inventory.CreateWarehouse(ctx, core.WarehouseInput{
		Name: "Main Warehouse", NameAr: "المخزن الرئيسي", Location: "Cairo", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateWarehouse: %v", err)
	}

	record := func(movementType, quantity string) {
		t.Helper()
		_, err := inventory.RecordMovement(ctx, core.StockMovementInput{
			WarehouseID:  wh.ID,
			ItemName:     "Cement",
			MovementType: movementType,
			Quantity:     quantity,
		})
		if err != nil {
			t.Fatalf("RecordMovement %s %s: %v", movementType, quantity, err)
		}
	}

	record("in", "100")
	record("out", "30")

	t.Run("StockIsNetOfMovements", func(t *testing.T) {
		list, err := inventory.GetWarehousesWithStock(ctx)
		if err != nil {
			t.Fatalf("GetWarehousesWithStock: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 warehouse, got %d", len(list))
		}
		if !list[0].CurrentStock.Equal(decimal.NewFromInt(70)) {
			t.Errorf("stock = %s, want 70", list[0].CurrentStock)
		}
	})

	t.Run("Movement_UnknownWarehouse", func(t *testing.T) {
		_, err := inventory.RecordMovement(ctx, core.StockMovementInput{
			WarehouseID:  9999,
			ItemName:     "Cement",
			MovementType: "in",
			Quantity:     "1",
		})
		if err == nil {
			t.Error("expected error for unknown warehouse")
		}
	})
}
