package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// The ledger engine is a set of pure functions over snapshots of the three
// collections (suppliers, invoices, payments) plus the stock mini-ledger.
// Nothing here mutates its inputs or touches the database; every view is
// recomputed from source collections on each call, so derived values can
// never diverge from the data they are derived from.

// EntryKind distinguishes the two transaction types on a statement.
type EntryKind string

const (
	EntryInvoice EntryKind = "invoice"
	EntryPayment EntryKind = "payment"
)

// StatementTransaction is one row of a supplier statement or the
// financial-movements report. Amount is signed: positive for invoices
// (purchases increase the payable), negative for payments.
type StatementTransaction struct {
	Date      time.Time       `json:"date"`
	Kind      EntryKind       `json:"kind"`
	Reference string          `json:"reference"`
	Supplier  BilingualText   `json:"supplier"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

// Statement is a chronological run of transactions with a running balance.
// ClosingBalance always equals OpeningBalance plus the signed sum of all
// included transactions, and equals the Balance of the final row.
type Statement struct {
	Transactions   []StatementTransaction `json:"transactions"`
	OpeningBalance decimal.Decimal        `json:"opening_balance"`
	ClosingBalance decimal.Decimal        `json:"closing_balance"`
}

// MonthlyBucket aggregates purchases and payments for one calendar month.
type MonthlyBucket struct {
	Month     string          `json:"month"` // YYYY-MM
	Purchases decimal.Decimal `json:"purchases"`
	Payments  decimal.Decimal `json:"payments"`
}

// SupplierStanding is a supplier's outstanding payable balance.
type SupplierStanding struct {
	SupplierID int             `json:"supplier_id"`
	Name       BilingualText   `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
}

// MethodShare is one slice of the payment-method distribution.
type MethodShare struct {
	Method     PaymentMethod   `json:"method"`
	Total      decimal.Decimal `json:"total"`
	Percentage int             `json:"percentage"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Date      time.Time       `json:"date"`
	Kind      EntryKind       `json:"kind"`
	Reference string          `json:"reference"`
	Supplier  BilingualText   `json:"supplier"`
	Amount    decimal.Decimal `json:"amount"`
}

// DashboardSummary holds the headline figures for the dashboard.
type DashboardSummary struct {
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	OverdueCount      int             `json:"overdue_count"`
	PaymentsThisMonth decimal.Decimal `json:"payments_this_month"`
	ActiveSuppliers   int             `json:"active_suppliers"`
}

// SupplyUsage rolls up one distinct line-item name across all invoices.
type SupplyUsage struct {
	Name          BilingualText   `json:"name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// DateOnly truncates t to midnight UTC so that due-date comparisons ignore
// the time-of-day component.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func inRange(d time.Time, from, to *time.Time) bool {
	day := DateOnly(d)
	if from != nil && day.Before(DateOnly(*from)) {
		return false
	}
	if to != nil && day.After(DateOnly(*to)) {
		return false
	}
	return true
}

func beforeRange(d time.Time, from *time.Time) bool {
	return from != nil && DateOnly(d).Before(DateOnly(*from))
}

// ── Balances and status ───────────────────────────────────────────────────────

// SupplierBalance returns the outstanding payable for one supplier:
// the sum of its credit-invoice totals minus the sum of its payments.
// Cash invoices never contribute. An unknown supplier yields zero.
// Positive means the business still owes the supplier.
func SupplierBalance(supplierID int, invoices []Invoice, payments []Payment) decimal.Decimal {
	balance := decimal.Zero
	for _, inv := range invoices {
		if inv.SupplierID == supplierID && inv.PaymentType == PaymentTypeCredit {
			balance = balance.Add(inv.TotalAmount)
		}
	}
	for _, p := range payments {
		if p.SupplierID == supplierID {
			balance = balance.Sub(p.Amount)
		}
	}
	return balance
}

// DeriveStatus evaluates an invoice's effective status as of today.
// Cash invoices are always paid. A credit invoice that has not been marked
// paid becomes overdue once its due date is strictly before today
// (date-only comparison). Payments never flip an invoice to paid: settlement
// is tracked only at the aggregate supplier balance, so an invoice can stay
// pending or overdue while the balance is zero.
func DeriveStatus(inv Invoice, today time.Time) InvoiceStatus {
	if inv.PaymentType == PaymentTypeCash {
		return StatusPaid
	}
	if inv.Status == StatusPaid {
		return StatusPaid
	}
	if inv.DueDate != nil && DateOnly(*inv.DueDate).Before(DateOnly(today)) {
		return StatusOverdue
	}
	return StatusPending
}

// ── Statements ────────────────────────────────────────────────────────────────

// BuildSupplierStatement merges one supplier's invoices (+total) and payments
// (−amount) into a chronological statement with a running balance. The
// optional date range is inclusive; transactions strictly before from are
// folded into the opening balance so a truncated statement still reconciles.
// Same-day ties list invoices before payments.
//
// Over an unbounded range the closing balance equals
// SupplierBalance(supplierID, …) provided every invoice is a credit invoice;
// cash invoices appear on the statement as settled purchases but are excluded
// from the payable balance.
func BuildSupplierStatement(supplierID int, invoices []Invoice, payments []Payment, from, to *time.Time) Statement {
	var entries []StatementTransaction
	opening := decimal.Zero

	for _, inv := range invoices {
		if inv.SupplierID != supplierID {
			continue
		}
		if beforeRange(inv.InvoiceDate, from) {
			opening = opening.Add(inv.TotalAmount)
			continue
		}
		if !inRange(inv.InvoiceDate, from, to) {
			continue
		}
		entries = append(entries, StatementTransaction{
			Date:      DateOnly(inv.InvoiceDate),
			Kind:      EntryInvoice,
			Reference: inv.InvoiceNumber,
			Amount:    inv.TotalAmount,
		})
	}
	for _, p := range payments {
		if p.SupplierID != supplierID {
			continue
		}
		if beforeRange(p.PaymentDate, from) {
			opening = opening.Sub(p.Amount)
			continue
		}
		if !inRange(p.PaymentDate, from, to) {
			continue
		}
		entries = append(entries, StatementTransaction{
			Date:      DateOnly(p.PaymentDate),
			Kind:      EntryPayment,
			Reference: p.ReferenceNumber,
			Amount:    p.Amount.Neg(),
		})
	}

	return foldStatement(entries, opening)
}

// BuildFinancialMovements is the all-supplier variant of the statement: every
// invoice and payment in the inclusive range, with the supplier's bilingual
// label merged into each row. A dangling supplier reference yields an empty
// label rather than an error.
func BuildFinancialMovements(suppliers []Supplier, invoices []Invoice, payments []Payment, from, to *time.Time) Statement {
	var entries []StatementTransaction
	opening := decimal.Zero

	for _, inv := range invoices {
		if beforeRange(inv.InvoiceDate, from) {
			opening = opening.Add(inv.TotalAmount)
			continue
		}
		if !inRange(inv.InvoiceDate, from, to) {
			continue
		}
		entries = append(entries, StatementTransaction{
			Date:      DateOnly(inv.InvoiceDate),
			Kind:      EntryInvoice,
			Reference: inv.InvoiceNumber,
			Supplier:  SupplierLabel(suppliers, inv.SupplierID),
			Amount:    inv.TotalAmount,
		})
	}
	for _, p := range payments {
		if beforeRange(p.PaymentDate, from) {
			opening = opening.Sub(p.Amount)
			continue
		}
		if !inRange(p.PaymentDate, from, to) {
			continue
		}
		entries = append(entries, StatementTransaction{
			Date:      DateOnly(p.PaymentDate),
			Kind:      EntryPayment,
			Reference: p.ReferenceNumber,
			Supplier:  SupplierLabel(suppliers, p.SupplierID),
			Amount:    p.Amount.Neg(),
		})
	}

	return foldStatement(entries, opening)
}

// foldStatement sorts entries ascending by date (stable, so invoices stay
// ahead of payments on same-day ties) and accumulates the running balance.
func foldStatement(entries []StatementTransaction, opening decimal.Decimal) Statement {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	running := opening
	for i := range entries {
		running = running.Add(entries[i].Amount)
		entries[i].Balance = running
	}
	return Statement{
		Transactions:   entries,
		OpeningBalance: opening,
		ClosingBalance: running,
	}
}

// ── Reports ───────────────────────────────────────────────────────────────────

// BuildMonthlySummary buckets every invoice and payment by YYYY-MM and
// returns the buckets in ascending month order.
func BuildMonthlySummary(invoices []Invoice, payments []Payment) []MonthlyBucket {
	buckets := map[string]*MonthlyBucket{}
	get := func(month string) *MonthlyBucket {
		b, ok := buckets[month]
		if !ok {
			b = &MonthlyBucket{Month: month}
			buckets[month] = b
		}
		return b
	}
	for _, inv := range invoices {
		b := get(inv.InvoiceDate.Format("2006-01"))
		b.Purchases = b.Purchases.Add(inv.TotalAmount)
	}
	for _, p := range payments {
		b := get(p.PaymentDate.Format("2006-01"))
		b.Payments = b.Payments.Add(p.Amount)
	}

	out := make([]MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopSuppliersByBalance ranks suppliers by outstanding balance, keeping only
// positive balances, descending, truncated to the first n.
func TopSuppliersByBalance(suppliers []Supplier, invoices []Invoice, payments []Payment, n int) []SupplierStanding {
	var standings []SupplierStanding
	for _, s := range suppliers {
		balance := SupplierBalance(s.ID, invoices, payments)
		if balance.IsPositive() {
			standings = append(standings, SupplierStanding{
				SupplierID: s.ID,
				Name:       s.Name,
				Balance:    balance,
			})
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Balance.GreaterThan(standings[j].Balance)
	})
	if n >= 0 && len(standings) > n {
		standings = standings[:n]
	}
	return standings
}

// PaymentMethodDistribution totals payments per method and computes each
// method's integer percentage of the grand total. Methods with no payments
// are omitted.
func PaymentMethodDistribution(payments []Payment) []MethodShare {
	totals := map[PaymentMethod]decimal.Decimal{}
	grand := decimal.Zero
	for _, p := range payments {
		totals[p.PaymentMethod] = totals[p.PaymentMethod].Add(p.Amount)
		grand = grand.Add(p.Amount)
	}

	var shares []MethodShare
	for _, m := range []PaymentMethod{MethodCash, MethodCheck, MethodBankTransfer} {
		total, ok := totals[m]
		if !ok || total.IsZero() {
			continue
		}
		pct := 0
		if grand.IsPositive() {
			pct = int(total.Div(grand).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
		shares = append(shares, MethodShare{Method: m, Total: total, Percentage: pct})
	}
	return shares
}

// DashboardStats computes the headline dashboard figures as of today.
func DashboardStats(suppliers []Supplier, invoices []Invoice, payments []Payment, today time.Time) DashboardSummary {
	var out DashboardSummary
	for _, s := range suppliers {
		out.TotalOutstanding = out.TotalOutstanding.Add(SupplierBalance(s.ID, invoices, payments))
		if s.IsActive {
			out.ActiveSuppliers++
		}
	}
	for _, inv := range invoices {
		if DeriveStatus(inv, today) == StatusOverdue {
			out.OverdueCount++
		}
	}
	for _, p := range payments {
		if p.PaymentDate.Year() == today.Year() && p.PaymentDate.Month() == today.Month() {
			out.PaymentsThisMonth = out.PaymentsThisMonth.Add(p.Amount)
		}
	}
	return out
}

// RecentActivity merges invoices and payments into a single feed sorted
// descending by date, truncated to the first n entries.
func RecentActivity(suppliers []Supplier, invoices []Invoice, payments []Payment, n int) []ActivityEntry {
	entries := make([]ActivityEntry, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		entries = append(entries, ActivityEntry{
			Date:      DateOnly(inv.InvoiceDate),
			Kind:      EntryInvoice,
			Reference: inv.InvoiceNumber,
			Supplier:  SupplierLabel(suppliers, inv.SupplierID),
			Amount:    inv.TotalAmount,
		})
	}
	for _, p := range payments {
		entries = append(entries, ActivityEntry{
			Date:      DateOnly(p.PaymentDate),
			Kind:      EntryPayment,
			Reference: p.ReferenceNumber,
			Supplier:  SupplierLabel(suppliers, p.SupplierID),
			Amount:    p.Amount,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// SupplyTotals rolls up distinct line-item names across all invoices with
// their accumulated quantity and value, sorted by name.
func SupplyTotals(invoices []Invoice) []SupplyUsage {
	type key struct{ en, ar string }
	usage := map[key]*SupplyUsage{}
	for _, inv := range invoices {
		for _, item := range inv.Items {
			k := key{item.ItemName.En, item.ItemName.Ar}
			u, ok := usage[k]
			if !ok {
				u = &SupplyUsage{Name: item.ItemName}
				usage[k] = u
			}
			u.TotalQuantity = u.TotalQuantity.Add(item.Quantity)
			u.TotalValue = u.TotalValue.Add(item.Total)
		}
	}

	out := make([]SupplyUsage, 0, len(usage))
	for _, u := range usage {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.En < out[j].Name.En })
	return out
}

// OverdueInvoices returns the invoices whose derived status is overdue as of
// today, optionally bounded by due date.
func OverdueInvoices(invoices []Invoice, today time.Time, from, to *time.Time) []Invoice {
	var out []Invoice
	for _, inv := range invoices {
		if DeriveStatus(inv, today) != StatusOverdue {
			continue
		}
		if inv.DueDate != nil && !inRange(*inv.DueDate, from, to) {
			continue
		}
		inv.Status = StatusOverdue
		out = append(out, inv)
	}
	return out
}

// PurchaseHistory returns the invoices whose invoice date falls in the
// inclusive range.
func PurchaseHistory(invoices []Invoice, from, to *time.Time) []Invoice {
	var out []Invoice
	for _, inv := range invoices {
		if inRange(inv.InvoiceDate, from, to) {
			out = append(out, inv)
		}
	}
	return out
}

// PaymentHistory returns the payments whose payment date falls in the
// inclusive range.
func PaymentHistory(payments []Payment, from, to *time.Time) []Payment {
	var out []Payment
	for _, p := range payments {
		if inRange(p.PaymentDate, from, to) {
			out = append(out, p)
		}
	}
	return out
}

// ── Stock mini-ledger ─────────────────────────────────────────────────────────

// WarehouseStock nets a warehouse's in and out movements into its current
// stock quantity. Transfer movements are recorded but intentionally not
// netted here; whether they should move quantity between warehouses is an
// open business question.
func WarehouseStock(warehouseID int, movements []StockMovement) decimal.Decimal {
	stock := decimal.Zero
	for _, m := range movements {
		if m.WarehouseID != warehouseID {
			continue
		}
		switch m.MovementType {
		case MovementIn:
			stock = stock.Add(m.Quantity)
		case MovementOut:
			stock = stock.Sub(m.Quantity)
		}
	}
	return stock
}

// SupplierLabel resolves a supplier id to its bilingual display name.
// A dangling reference yields the zero label.
func SupplierLabel(suppliers []Supplier, id int) BilingualText {
	for _, s := range suppliers {
		if s.ID == id {
			return s.Name
		}
	}
	return BilingualText{}
}
