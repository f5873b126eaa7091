package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Write inputs carry amounts and dates as strings exactly as received from
// the client, and are normalized then strictly validated before anything is
// materialized. Non-numeric quantities and prices are rejected, never
// coerced to zero.

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ── Supplier ──────────────────────────────────────────────────────────────────

// SupplierInput holds the fields required to create or update a supplier.
type SupplierInput struct {
	Name             string `json:"name"`
	NameAr           string `json:"name_ar"`
	ContactPerson    string `json:"contact_person"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	PaymentTermsDays int    `json:"payment_terms_days"`
	Notes            string `json:"notes"`
	IsActive         bool   `json:"is_active"`
}

func (in *SupplierInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Phone = strings.TrimSpace(in.Phone)
}

func (in *SupplierInput) Validate() error {
	if in.Name == "" && in.NameAr == "" {
		return errors.New("supplier must have a name in at least one language")
	}
	if in.PaymentTermsDays < 0 {
		return fmt.Errorf("payment terms days must be >= 0, got %d", in.PaymentTermsDays)
	}
	return nil
}

// ── Invoice ───────────────────────────────────────────────────────────────────

// InvoiceItemInput is one line item as submitted by the client.
type InvoiceItemInput struct {
	ItemName   string `json:"item_name"`
	ItemNameAr string `json:"item_name_ar"`
	Quantity   string `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
}

// InvoiceInput holds the fields required to create or update an invoice.
// Line totals and the invoice total are computed here, never trusted from
// the client.
type InvoiceInput struct {
	SupplierID    int                `json:"supplier_id"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   string             `json:"invoice_date"`
	PaymentType   string             `json:"payment_type"`
	DueDate       string             `json:"due_date"`
	Items         []InvoiceItemInput `json:"items"`
	Notes         string             `json:"notes"`
	CreatedBy     string             `json:"created_by"`
}

func (in *InvoiceInput) Normalize() {
	in.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	in.InvoiceDate = strings.TrimSpace(in.InvoiceDate)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.PaymentType = strings.ToLower(strings.TrimSpace(in.PaymentType))
	for i := range in.Items {
		item := &in.Items[i]
		item.ItemName = strings.TrimSpace(item.ItemName)
		item.ItemNameAr = strings.TrimSpace(item.ItemNameAr)
		item.Quantity = strings.TrimSpace(item.Quantity)
		item.UnitPrice = strings.TrimSpace(item.UnitPrice)
	}
}

func (in *InvoiceInput) Validate() error {
	if in.SupplierID <= 0 {
		return errors.New("invoice must reference a supplier")
	}
	if in.InvoiceNumber == "" {
		return errors.New("invoice must have an invoice number")
	}

	invoiceDate, err := ParseDate(in.InvoiceDate)
	if err != nil {
		return fmt.Errorf("invoice date: %w", err)
	}

	switch PaymentType(in.PaymentType) {
	case PaymentTypeCredit:
		if in.DueDate == "" {
			return errors.New("credit invoice must have a due date")
		}
		dueDate, err := ParseDate(in.DueDate)
		if err != nil {
			return fmt.Errorf("due date: %w", err)
		}
		if dueDate.Before(invoiceDate) {
			return fmt.Errorf("due date %s is before invoice date %s", in.DueDate, in.InvoiceDate)
		}
	case PaymentTypeCash:
		if in.DueDate != "" {
			return errors.New("cash invoice must not have a due date")
		}
	default:
		return fmt.Errorf("invalid payment type %q", in.PaymentType)
	}

	if len(in.Items) == 0 {
		return errors.New("invoice must have at least one line item")
	}
	for i, item := range in.Items {
		if item.ItemName == "" && item.ItemNameAr == "" {
			return fmt.Errorf("line %d: item must have a name", i+1)
		}
		qty, err := decimal.NewFromString(item.Quantity)
		if err != nil {
			return fmt.Errorf("line %d: invalid quantity %q", i+1, item.Quantity)
		}
		if !qty.IsPositive() {
			return fmt.Errorf("line %d: quantity must be > 0, got %s", i+1, item.Quantity)
		}
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return fmt.Errorf("line %d: invalid unit price %q", i+1, item.UnitPrice)
		}
		if price.IsNegative() {
			return fmt.Errorf("line %d: unit price must be >= 0, got %s", i+1, item.UnitPrice)
		}
	}
	return nil
}

// Invoice materializes the validated input into an Invoice with computed
// line totals and total amount. Cash invoices start paid; credit invoices
// start pending.
func (in *InvoiceInput) Invoice() (Invoice, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Invoice{}, err
	}

	invoiceDate, _ := ParseDate(in.InvoiceDate)
	inv := Invoice{
		SupplierID:    in.SupplierID,
		InvoiceNumber: in.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		PaymentType:   PaymentType(in.PaymentType),
		Notes:         in.Notes,
		CreatedBy:     in.CreatedBy,
		Status:        StatusPending,
	}
	if inv.PaymentType == PaymentTypeCash {
		inv.Status = StatusPaid
	} else {
		dueDate, _ := ParseDate(in.DueDate)
		inv.DueDate = &dueDate
	}

	total := decimal.Zero
	for _, item := range in.Items {
		qty, _ := decimal.NewFromString(item.Quantity)
		price, _ := decimal.NewFromString(item.UnitPrice)
		lineTotal := qty.Mul(price)
		inv.Items = append(inv.Items, InvoiceItem{
			ItemName:  BilingualText{En: item.ItemName, Ar: item.ItemNameAr},
			Quantity:  qty,
			UnitPrice: price,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}
	inv.TotalAmount = total
	return inv, nil
}

// ── Payment ───────────────────────────────────────────────────────────────────

// PaymentInput holds the fields required to record a payment to a supplier.
type PaymentInput struct {
	SupplierID      int    `json:"supplier_id"`
	Amount          string `json:"amount"`
	PaymentDate     string `json:"payment_date"`
	PaymentMethod   string `json:"payment_method"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
	CreatedBy       string `json:"created_by"`
}

func (in *PaymentInput) Normalize() {
	in.Amount = strings.TrimSpace(in.Amount)
	in.PaymentDate = strings.TrimSpace(in.PaymentDate)
	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	in.ReferenceNumber = strings.TrimSpace(in.ReferenceNumber)
}

func (in *PaymentInput) Validate() error {
	if in.SupplierID <= 0 {
		return errors.New("payment must reference a supplier")
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q", in.Amount)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be > 0, got %s", in.Amount)
	}
	if _, err := ParseDate(in.PaymentDate); err != nil {
		return fmt.Errorf("payment date: %w", err)
	}
	switch PaymentMethod(in.PaymentMethod) {
	case MethodCash, MethodCheck, MethodBankTransfer:
	default:
		return fmt.Errorf("invalid payment method %q", in.PaymentMethod)
	}
	return nil
}

// Payment materializes the validated input into a Payment.
func (in *PaymentInput) Payment() (Payment, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Payment{}, err
	}
	amount, _ := decimal.NewFromString(in.Amount)
	paymentDate, _ := ParseDate(in.PaymentDate)
	return Payment{
		SupplierID:      in.SupplierID,
		Amount:          amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   PaymentMethod(in.PaymentMethod),
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
		CreatedBy:       in.CreatedBy,
	}, nil
}

// ── Warehouse and stock movement ──────────────────────────────────────────────

// WarehouseInput holds the fields required to create or update a warehouse.
type WarehouseInput struct {
	Name     string `json:"name"`
	NameAr   string `json:"name_ar"`
	Location string `json:"location"`
	Manager  string `json:"manager"`
	Notes    string `json:"notes"`
	IsActive bool   `json:"is_active"`
}

func (in *WarehouseInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	in.Location = strings.TrimSpace(in.Location)
	in.Manager = strings.TrimSpace(in.Manager)
}

func (in *WarehouseInput) Validate() error {
	if in.Name == "" && in.NameAr == "" {
		return errors.New("warehouse must have a name in at least one language")
	}
	return nil
}

// StockMovementInput holds the fields required to record a stock movement.
type StockMovementInput struct {
	WarehouseID  int    `json:"warehouse_id"`
	ItemName     string `json:"item_name"`
	ItemNameAr   string `json:"item_name_ar"`
	MovementType string `json:"movement_type"`
	Quantity     string `json:"quantity"`
	Reference    string `json:"reference"`
	Notes        string `json:"notes"`
	CreatedBy    string `json:"created_by"`
}

func (in *StockMovementInput) Normalize() {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.ItemNameAr = strings.TrimSpace(in.ItemNameAr)
	in.MovementType = strings.ToLower(strings.TrimSpace(in.MovementType))
	in.Quantity = strings.TrimSpace(in.Quantity)
	in.Reference = strings.TrimSpace(in.Reference)
}

func (in *StockMovementInput) Validate() error {
	if in.WarehouseID <= 0 {
		return errors.New("stock movement must reference a warehouse")
	}
	if in.ItemName == "" && in.ItemNameAr == "" {
		return errors.New("stock movement must have an item name")
	}
	switch MovementType(in.MovementType) {
	case MovementIn, MovementOut, MovementTransfer:
	default:
		return fmt.Errorf("invalid movement type %q", in.MovementType)
	}
	qty, err := decimal.NewFromString(in.Quantity)
	if err != nil {
		return fmt.Errorf("invalid quantity %q", in.Quantity)
	}
	if !qty.IsPositive() {
		return fmt.Errorf("quantity must be > 0, got %s", in.Quantity)
	}
	return nil
}

// Movement materializes the validated input into a StockMovement.
func (in *StockMovementInput) Movement() (StockMovement, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return StockMovement{}, err
	}
	qty, _ := decimal.NewFromString(in.Quantity)
	return StockMovement{
		WarehouseID:  in.WarehouseID,
		ItemName:     BilingualText{En: in.ItemName, Ar: in.ItemNameAr},
		MovementType: MovementType(in.MovementType),
		Quantity:     qty,
		Reference:    in.Reference,
		Notes:        in.Notes,
		CreatedBy:    in.CreatedBy,
	}, nil
}
