package core_test

import (
	"testing"

	"github.com/AhmedGad3/construction-erp/internal/core"

	"github.com/shopspring/decimal"
)

func validInvoiceInput() core.InvoiceInput {
	return core.InvoiceInput{
		SupplierID:    1,
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
}

func TestInvoiceInput_Invoice_ComputesTotals(t *testing.T) {
	in := validInvoiceInput()
	inv, err := in.Invoice()
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	if !inv.TotalAmount.Equal(decimal.NewFromInt(95000)) {
		t.Errorf("total = %s, want 95000", inv.TotalAmount)
	}
	if !inv.Items[0].Total.Equal(decimal.NewFromInt(85000)) {
		t.Errorf("line 1 total = %s, want 85000", inv.Items[0].Total)
	}
	if inv.Status != core.StatusPending {
		t.Errorf("credit invoice status = %s, want pending", inv.Status)
	}
	if inv.DueDate == nil || inv.DueDate.Format("2006-01-02") != "2024-11-30" {
		t.Errorf("due date not carried: %v", inv.DueDate)
	}
}

func TestInvoiceInput_CashStartsPaid(t *testing.T) {
	in := validInvoiceInput()
	in.PaymentType = "cash"
	in.DueDate = ""
	inv, err := in.Invoice()
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	if inv.Status != core.StatusPaid {
		t.Errorf("cash invoice status = %s, want paid", inv.Status)
	}
	if inv.DueDate != nil {
		t.Errorf("cash invoice must have no due date, got %v", inv.DueDate)
	}
}

func TestInvoiceInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*core.InvoiceInput)
		expectErr bool
	}{
		{"valid credit invoice", func(in *core.InvoiceInput) {}, false},
		{"missing supplier", func(in *core.InvoiceInput) { in.SupplierID = 0 }, true},
		{"missing invoice number", func(in *core.InvoiceInput) { in.InvoiceNumber = "  " }, true},
		{"malformed invoice date", func(in *core.InvoiceInput) { in.InvoiceDate = "10/01/2024" }, true},
		{"unknown payment type", func(in *core.InvoiceInput) { in.PaymentType = "installments" }, true},
		{"credit without due date", func(in *core.InvoiceInput) { in.DueDate = "" }, true},
		{"due date before invoice date", func(in *core.InvoiceInput) { in.DueDate = "2024-09-30" }, true},
		{"cash with due date", func(in *core.InvoiceInput) {
			in.PaymentType = "cash"
		}, true},
		{"no line items", func(in *core.InvoiceInput) { in.Items = nil }, true},
		{"nameless line item", func(in *core.InvoiceInput) {
			in.Items[0].ItemName = ""
			in.Items[0].ItemNameAr = ""
		}, true},
		{"non-numeric quantity", func(in *core.InvoiceInput) { in.Items[0].Quantity = "lots" }, true},
		{"zero quantity", func(in *core.InvoiceInput) { in.Items[0].Quantity = "0" }, true},
		{"negative quantity", func(in *core.InvoiceInput) { in.Items[0].Quantity = "-5" }, true},
		{"non-numeric unit price", func(in *core.InvoiceInput) { in.Items[0].UnitPrice = "cheap" }, true},
		{"negative unit price", func(in *core.InvoiceInput) { in.Items[0].UnitPrice = "-1" }, true},
		{"zero unit price allowed", func(in *core.InvoiceInput) { in.Items[0].UnitPrice = "0" }, false},
		{"uppercase payment type normalized", func(in *core.InvoiceInput) { in.PaymentType = " CREDIT " }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInvoiceInput()
			tt.mutate(&in)
			in.Normalize()
			err := in.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestPaymentInput_Validate(t *testing.T) {
	valid := core.PaymentInput{
		SupplierID:    1,
		Amount:        "45000",
		PaymentDate:   "2024-10-15",
		PaymentMethod: "bank_transfer",
	}

	tests := []struct {
		name      string
		mutate    func(*core.PaymentInput)
		expectErr bool
	}{
		{"valid payment", func(in *core.PaymentInput) {}, false},
		{"missing supplier", func(in *core.PaymentInput) { in.SupplierID = 0 }, true},
		{"non-numeric amount", func(in *core.PaymentInput) { in.Amount = "a lot" }, true},
		{"zero amount", func(in *core.PaymentInput) { in.Amount = "0" }, true},
		{"negative amount", func(in *core.PaymentInput) { in.Amount = "-100" }, true},
		{"malformed date", func(in *core.PaymentInput) { in.PaymentDate = "15-10-2024" }, true},
		{"unknown method", func(in *core.PaymentInput) { in.PaymentMethod = "crypto" }, true},
		{"method case-insensitive", func(in *core.PaymentInput) { in.PaymentMethod = "CASH" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			in.Normalize()
			err := in.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestSupplierInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     core.SupplierInput
		expectErr bool
	}{
		{"english name only", core.SupplierInput{Name: "Nile Materials Co."}, false},
		{"arabic name only", core.SupplierInput{NameAr: "شركة النيل للمواد"}, false},
		{"no name at all", core.SupplierInput{ContactPerson: "Ahmed"}, true},
		{"whitespace name", core.SupplierInput{Name: "   "}, true},
		{"negative payment terms", core.SupplierInput{Name: "X", PaymentTermsDays: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.Normalize()
			err := in.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestStockMovementInput_Validate(t *testing.T) {
	valid := core.StockMovementInput{
		WarehouseID:  1,
		ItemName:     "Cement",
		MovementType: "in",
		Quantity:     "100",
	}

	tests := []struct {
		name      string
		mutate    func(*core.StockMovementInput)
		expectErr bool
	}{
		{"valid movement", func(in *core.StockMovementInput) {}, false},
		{"missing warehouse", func(in *core.StockMovementInput) { in.WarehouseID = 0 }, true},
		{"missing item name", func(in *core.StockMovementInput) { in.ItemName = "" }, true},
		{"unknown movement type", func(in *core.StockMovementInput) { in.MovementType = "adjustment" }, true},
		{"transfer type accepted", func(in *core.StockMovementInput) { in.MovementType = "transfer" }, false},
		{"non-numeric quantity", func(in *core.StockMovementInput) { in.Quantity = "many" }, true},
		{"zero quantity", func(in *core.StockMovementInput) { in.Quantity = "0" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			in.Normalize()
			err := in.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := core.ParseDate("2024-10-01"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "2024/10/01", "01-10-2024", "2024-13-01"} {
		if _, err := core.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error, got nil", bad)
		}
	}
}
