package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AhmedGad3/construction-erp/internal/core"

	"golang.org/x/crypto/bcrypt"
)

type appService struct {
	users     core.UserService
	suppliers core.SupplierService
	invoices  core.InvoiceService
	payments  core.PaymentService
	inventory core.InventoryService
	reporting core.ReportingService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	users core.UserService,
	suppliers core.SupplierService,
	invoices core.InvoiceService,
	payments core.PaymentService,
	inventory core.InventoryService,
	reporting core.ReportingService,
) ApplicationService {
	return &appService{
		users:     users,
		suppliers: suppliers,
		invoices:  invoices,
		payments:  payments,
		inventory: inventory,
		reporting: reporting,
	}
}

// parseRange converts optional YYYY-MM-DD bounds into time pointers.
func parseRange(fromDate, toDate string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromDate != "" {
		t, err := core.ParseDate(fromDate)
		if err != nil {
			return nil, nil, fmt.Errorf("from: %w: %v", core.ErrInvalid, err)
		}
		from = &t
	}
	if toDate != "" {
		t, err := core.ParseDate(toDate)
		if err != nil {
			return nil, nil, fmt.Errorf("to: %w: %v", core.ErrInvalid, err)
		}
		to = &t
	}
	return from, to, nil
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authentication failed: invalid password")
	}
	return &UserSession{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*core.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	suppliers, err := s.suppliers.GetSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.GetPayments(ctx)
	if err != nil {
		return nil, err
	}

	result := &SupplierListResult{Suppliers: make([]SupplierWithBalance, 0, len(suppliers))}
	for _, sup := range suppliers {
		result.Suppliers = append(result.Suppliers, SupplierWithBalance{
			Supplier: sup,
			Balance:  core.SupplierBalance(sup.ID, invoices, payments),
		})
	}
	return result, nil
}

func (s *appService) GetSupplier(ctx context.Context, id int) (*core.Supplier, error) {
	return s.suppliers.GetSupplier(ctx, id)
}

func (s *appService) CreateSupplier(ctx context.Context, input core.SupplierInput) (*core.Supplier, error) {
	return s.suppliers.CreateSupplier(ctx, input)
}

func (s *appService) UpdateSupplier(ctx context.Context, id int, input core.SupplierInput) (*core.Supplier, error) {
	return s.suppliers.UpdateSupplier(ctx, id, input)
}

func (s *appService) DeleteSupplier(ctx context.Context, id int) error {
	return s.suppliers.DeleteSupplier(ctx, id)
}

func (s *appService) GetSupplierStatement(ctx context.Context, supplierID int, fromDate, toDate string) (*core.SupplierStatementReport, error) {
	from, to, err := parseRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.reporting.GetSupplierStatement(ctx, supplierID, from, to)
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func (s *appService) ListInvoices(ctx context.Context) (*InvoiceListResult, error) {
	invoices, err := s.invoices.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.suppliers.GetSuppliers(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	result := &InvoiceListResult{Invoices: make([]core.InvoiceRow, 0, len(invoices))}
	for _, inv := range invoices {
		inv.Status = core.DeriveStatus(inv, today)
		result.Invoices = append(result.Invoices, core.InvoiceRow{
			Invoice:      inv,
			SupplierName: core.SupplierLabel(suppliers, inv.SupplierID),
		})
	}
	return result, nil
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*core.Invoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Status = core.DeriveStatus(*inv, time.Now())
	return inv, nil
}

func (s *appService) CreateInvoice(ctx context.Context, input core.InvoiceInput) (*core.Invoice, error) {
	return s.invoices.CreateInvoice(ctx, input)
}

func (s *appService) UpdateInvoice(ctx context.Context, id int, input core.InvoiceInput) (*core.Invoice, error) {
	return s.invoices.UpdateInvoice(ctx, id, input)
}

func (s *appService) DeleteInvoice(ctx context.Context, id int) error {
	return s.invoices.DeleteInvoice(ctx, id)
}

func (s *appService) MarkInvoicePaid(ctx context.Context, id int) (*core.Invoice, error) {
	return s.invoices.MarkPaid(ctx, id)
}

// ── Payments ──────────────────────────────────────────────────────────────────

func (s *appService) ListPayments(ctx context.Context) (*PaymentListResult, error) {
	payments, err := s.payments.GetPayments(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.suppliers.GetSuppliers(ctx)
	if err != nil {
		return nil, err
	}

	result := &PaymentListResult{Payments: make([]core.PaymentRow, 0, len(payments))}
	for _, p := range payments {
		result.Payments = append(result.Payments, core.PaymentRow{
			Payment:      p,
			SupplierName: core.SupplierLabel(suppliers, p.SupplierID),
		})
	}
	return result, nil
}

func (s *appService) GetPayment(ctx context.Context, id int) (*core.Payment, error) {
	return s.payments.GetPayment(ctx, id)
}

func (s *appService) CreatePayment(ctx context.Context, input core.PaymentInput) (*core.Payment, error) {
	return s.payments.CreatePayment(ctx, input)
}

func (s *appService) UpdatePayment(ctx context.Context, id int, input core.PaymentInput) (*core.Payment, error) {
	return s.payments.UpdatePayment(ctx, id, input)
}

func (s *appService) DeletePayment(ctx context.Context, id int) error {
	return s.payments.DeletePayment(ctx, id)
}

// ── Warehouses and stock ──────────────────────────────────────────────────────

func (s *appService) ListWarehouses(ctx context.Context) ([]core.WarehouseWithStock, error) {
	return s.inventory.GetWarehousesWithStock(ctx)
}

func (s *appService) CreateWarehouse(ctx context.Context, input core.WarehouseInput) (*core.Warehouse, error) {
	return s.inventory.CreateWarehouse(ctx, input)
}

func (s *appService) UpdateWarehouse(ctx context.Context, id int, input core.WarehouseInput) (*core.Warehouse, error) {
	return s.inventory.UpdateWarehouse(ctx, id, input)
}

func (s *appService) DeleteWarehouse(ctx context.Context, id int) error {
	return s.inventory.DeleteWarehouse(ctx, id)
}

func (s *appService) ListStockMovements(ctx context.Context) ([]core.StockMovement, error) {
	return s.inventory.GetMovements(ctx)
}

func (s *appService) RecordStockMovement(ctx context.Context, input core.StockMovementInput) (*core.StockMovement, error) {
	return s.inventory.RecordMovement(ctx, input)
}

func (s *appService) UpdateStockMovement(ctx context.Context, id int, input core.StockMovementInput) (*core.StockMovement, error) {
	return s.inventory.UpdateMovement(ctx, id, input)
}

func (s *appService) DeleteStockMovement(ctx context.Context, id int) error {
	return s.inventory.DeleteMovement(ctx, id)
}

func (s *appService) ListSupplies(ctx context.Context) ([]core.SupplyUsage, error) {
	return s.reporting.GetSupplies(ctx)
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (s *appService) GetDashboard(ctx context.Context) (*core.DashboardReport, error) {
	return s.reporting.GetDashboard(ctx)
}

func (s *appService) GetMonthlySummary(ctx context.Context) ([]core.MonthlyBucket, error) {
	return s.reporting.GetMonthlySummary(ctx)
}

func (s *appService) GetFinancialMovements(ctx context.Context, fromDate, toDate string) (*core.Statement, error) {
	from, to, err := parseRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.reporting.GetFinancialMovements(ctx, from, to)
}

func (s *appService) GetTopSuppliers(ctx context.Context, n int) ([]core.SupplierStanding, error) {
	return s.reporting.GetTopSuppliers(ctx, n)
}

func (s *appService) GetPaymentMethods(ctx context.Context) ([]core.MethodShare, error) {
	return s.reporting.GetPaymentMethods(ctx)
}

func (s *appService) GetOverdueInvoices(ctx context.Context, fromDate, toDate string) ([]core.InvoiceRow, error) {
	from, to, err := parseRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.reporting.GetOverdueInvoices(ctx, from, to)
}

func (s *appService) GetPurchaseHistory(ctx context.Context, fromDate, toDate string) ([]core.InvoiceRow, error) {
	from, to, err := parseRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.reporting.GetPurchaseHistory(ctx, from, to)
}

func (s *appService) GetPaymentHistory(ctx context.Context, fromDate, toDate string) ([]core.PaymentRow, error) {
	from, to, err := parseRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.reporting.GetPaymentHistory(ctx, from, to)
}
