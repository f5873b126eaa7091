package app

import (
	"context"

	"github.com/AhmedGad3/construction-erp/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// HTTP types and no display logic.
//
// Date range parameters are YYYY-MM-DD strings; an empty string means
// unbounded on that side.
type ApplicationService interface {
	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error)

	// GetUser returns the user profile by ID.
	GetUser(ctx context.Context, userID int) (*core.User, error)

	// ── Suppliers ─────────────────────────────────────────────────────────

	// ListSuppliers returns all suppliers, each with its outstanding balance.
	ListSuppliers(ctx context.Context) (*SupplierListResult, error)
	GetSupplier(ctx context.Context, id int) (*core.Supplier, error)
	CreateSupplier(ctx context.Context, input core.SupplierInput) (*core.Supplier, error)
	UpdateSupplier(ctx context.Context, id int, input core.SupplierInput) (*core.Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error

	// GetSupplierStatement returns the supplier's chronological statement
	// with running balance, optionally bounded by the inclusive date range.
	GetSupplierStatement(ctx context.Context, supplierID int, fromDate, toDate string) (*core.SupplierStatementReport, error)

	// ── Invoices ──────────────────────────────────────────────────────────

	// ListInvoices returns all invoices with supplier labels and statuses
	// derived as of today.
	ListInvoices(ctx context.Context) (*InvoiceListResult, error)
	GetInvoice(ctx context.Context, id int) (*core.Invoice, error)
	CreateInvoice(ctx context.Context, input core.InvoiceInput) (*core.Invoice, error)
	UpdateInvoice(ctx context.Context, id int, input core.InvoiceInput) (*core.Invoice, error)
	DeleteInvoice(ctx context.Context, id int) error

	// MarkInvoicePaid explicitly settles an invoice.
	MarkInvoicePaid(ctx context.Context, id int) (*core.Invoice, error)

	// ── Payments ──────────────────────────────────────────────────────────

	ListPayments(ctx context.Context) (*PaymentListResult, error)
	GetPayment(ctx context.Context, id int) (*core.Payment, error)
	CreatePayment(ctx context.Context, input core.PaymentInput) (*core.Payment, error)
	UpdatePayment(ctx context.Context, id int, input core.PaymentInput) (*core.Payment, error)
	DeletePayment(ctx context.Context, id int) error

	// ── Warehouses and stock ──────────────────────────────────────────────

	// ListWarehouses returns all warehouses with their derived current stock.
	ListWarehouses(ctx context.Context) ([]core.WarehouseWithStock, error)
	CreateWarehouse(ctx context.Context, input core.WarehouseInput) (*core.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int, input core.WarehouseInput) (*core.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int) error

	ListStockMovements(ctx context.Context) ([]core.StockMovement, error)
	RecordStockMovement(ctx context.Context, input core.StockMovementInput) (*core.StockMovement, error)
	UpdateStockMovement(ctx context.Context, id int, input core.StockMovementInput) (*core.StockMovement, error)
	DeleteStockMovement(ctx context.Context, id int) error

	// ListSupplies returns the distinct line-item roll-up across all invoices.
	ListSupplies(ctx context.Context) ([]core.SupplyUsage, error)

	// ── Reports ───────────────────────────────────────────────────────────

	GetDashboard(ctx context.Context) (*core.DashboardReport, error)
	GetMonthlySummary(ctx context.Context) ([]core.MonthlyBucket, error)
	GetFinancialMovements(ctx context.Context, fromDate, toDate string) (*core.Statement, error)
	GetTopSuppliers(ctx context.Context, n int) ([]core.SupplierStanding, error)
	GetPaymentMethods(ctx context.Context) ([]core.MethodShare, error)
	GetOverdueInvoices(ctx context.Context, fromDate, toDate string) ([]core.InvoiceRow, error)
	GetPurchaseHistory(ctx context.Context, fromDate, toDate string) ([]core.InvoiceRow, error)
	GetPaymentHistory(ctx context.Context, fromDate, toDate string) ([]core.PaymentRow, error)
}

// UserSession is the authenticated identity handed to the web adapter for
// token issuance.
type UserSession struct {
	UserID int                `json:"user_id"`
	Name   core.BilingualText `json:"name"`
	Email  string             `json:"email"`
	Role   string             `json:"role"`
}
