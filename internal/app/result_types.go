package app

import (
	"github.com/AhmedGad3/construction-erp/internal/core"

	"github.com/shopspring/decimal"
)

// SupplierWithBalance is a supplier joined with its derived outstanding
// balance.
type SupplierWithBalance struct {
	core.Supplier
	Balance decimal.Decimal `json:"balance"`
}

// SupplierListResult is returned by ListSuppliers.
type SupplierListResult struct {
	Suppliers []SupplierWithBalance `json:"suppliers"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.InvoiceRow `json:"invoices"`
}

// PaymentListResult is returned by ListPayments.
type PaymentListResult struct {
	Payments []core.PaymentRow `json:"payments"`
}
