package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// InvoiceRow is an invoice projected with its supplier's bilingual label and
// its derived status, for report listings.
type InvoiceRow struct {
	Invoice
	SupplierName BilingualText `json:"supplier_name"`
}

// PaymentRow is a payment projected with its supplier's bilingual label.
type PaymentRow struct {
	Payment
	SupplierName BilingualText `json:"supplier_name"`
}

// SupplierStatementReport is a supplier's statement together with the
// supplier record and its overall outstanding balance.
type SupplierStatementReport struct {
	Supplier  Supplier        `json:"supplier"`
	Statement Statement       `json:"statement"`
	Balance   decimal.Decimal `json:"balance"`
}

// DashboardReport bundles everything the dashboard shows in one read.
type DashboardReport struct {
	Summary        DashboardSummary   `json:"summary"`
	MonthlySummary []MonthlyBucket    `json:"monthly_summary"`
	TopSuppliers   []SupplierStanding `json:"top_suppliers"`
	PaymentMethods []MethodShare      `json:"payment_methods"`
	RecentActivity []ActivityEntry    `json:"recent_activity"`
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService provides the read-only derived views. Every report loads
// a fresh snapshot of the source collections and folds it through the pure
// ledger engine; balances and statuses are never read from storage.
type ReportingService interface {
	GetSupplierStatement(ctx context.Context, supplierID int, from, to *time.Time) (*SupplierStatementReport, error)
	GetFinancialMovements(ctx context.Context, from, to *time.Time) (*Statement, error)
	GetMonthlySummary(ctx context.Context) ([]MonthlyBucket, error)
	GetTopSuppliers(ctx context.Context, n int) ([]SupplierStanding, error)
	GetPaymentMethods(ctx context.Context) ([]MethodShare, error)
	GetDashboard(ctx context.Context) (*DashboardReport, error)
	GetOverdueInvoices(ctx context.Context, from, to *time.Time) ([]InvoiceRow, error)
	GetPurchaseHistory(ctx context.Context, from, to *time.Time) ([]InvoiceRow, error)
	GetPaymentHistory(ctx context.Context, from, to *time.Time) ([]PaymentRow, error)
	GetSupplies(ctx context.Context) ([]SupplyUsage, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	suppliers SupplierService
	invoices  InvoiceService
	payments  PaymentService
	now       func() time.Time
}

// NewReportingService constructs a ReportingService over the master data
// services.
func NewReportingService(suppliers SupplierService, invoices InvoiceService, payments PaymentService) ReportingService {
	return &reportingService{
		suppliers: suppliers,
		invoices:  invoices,
		payments:  payments,
		now:       time.Now,
	}
}

type snapshot struct {
	suppliers []Supplier
	invoices  []Invoice
	payments  []Payment
}

func (s *reportingService) load(ctx context.Context) (*snapshot, error) {
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
	return &snapshot{suppliers: suppliers, invoices: invoices, payments: payments}, nil
}

func (s *reportingService) GetSupplierStatement(ctx context.Context, supplierID int, from, to *time.Time) (*SupplierStatementReport, error) {
	supplier, err := s.suppliers.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &SupplierStatementReport{
		Supplier:  *supplier,
		Statement: BuildSupplierStatement(supplierID, snap.invoices, snap.payments, from, to),
		Balance:   SupplierBalance(supplierID, snap.invoices, snap.payments),
	}, nil
}

func (s *reportingService) GetFinancialMovements(ctx context.Context, from, to *time.Time) (*Statement, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	stmt := BuildFinancialMovements(snap.suppliers, snap.invoices, snap.payments, from, to)
	return &stmt, nil
}

func (s *reportingService) GetMonthlySummary(ctx context.Context) ([]MonthlyBucket, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMonthlySummary(snap.invoices, snap.payments), nil
}

func (s *reportingService) GetTopSuppliers(ctx context.Context, n int) ([]SupplierStanding, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return TopSuppliersByBalance(snap.suppliers, snap.invoices, snap.payments, n), nil
}

func (s *reportingService) GetPaymentMethods(ctx context.Context) ([]MethodShare, error) {
	payments, err := s.payments.GetPayments(ctx)
	if err != nil {
		return nil, err
	}
	return PaymentMethodDistribution(payments), nil
}

func (s *reportingService) GetDashboard(ctx context.Context) (*DashboardReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	return &DashboardReport{
		Summary:        DashboardStats(snap.suppliers, snap.invoices, snap.payments, today),
		MonthlySummary: BuildMonthlySummary(snap.invoices, snap.payments),
		TopSuppliers:   TopSuppliersByBalance(snap.suppliers, snap.invoices, snap.payments, 5),
		PaymentMethods: PaymentMethodDistribution(snap.payments),
		RecentActivity: RecentActivity(snap.suppliers, snap.invoices, snap.payments, 10),
	}, nil
}

func (s *reportingService) GetOverdueInvoices(ctx context.Context, from, to *time.Time) ([]InvoiceRow, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return invoiceRows(snap.suppliers, OverdueInvoices(snap.invoices, s.now(), from, to)), nil
}

func (s *reportingService) GetPurchaseHistory(ctx context.Context, from, to *time.Time) ([]InvoiceRow, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	history := PurchaseHistory(snap.invoices, from, to)
	for i := range history {
		history[i].Status = DeriveStatus(history[i], today)
	}
	return invoiceRows(snap.suppliers, history), nil
}

func (s *reportingService) GetPaymentHistory(ctx context.Context, from, to *time.Time) ([]PaymentRow, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	history := PaymentHistory(snap.payments, from, to)
	rows := make([]PaymentRow, 0, len(history))
	for _, p := range history {
		rows = append(rows, PaymentRow{
			Payment:      p,
			SupplierName: SupplierLabel(snap.suppliers, p.SupplierID),
		})
	}
	return rows, nil
}

func (s *reportingService) GetSupplies(ctx context.Context) ([]SupplyUsage, error) {
	invoices, err := s.invoices.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return SupplyTotals(invoices), nil
}

func invoiceRows(suppliers []Supplier, invoices []Invoice) []InvoiceRow {
	rows := make([]InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, InvoiceRow{
			Invoice:      inv,
			SupplierName: SupplierLabel(suppliers, inv.SupplierID),
		})
	}
	return rows
}
