package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BilingualText is a human-readable label in both supported locales.
// Business logic never picks a side; resolution to one language happens
// at the presentation boundary.
type BilingualText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// IsEmpty reports whether neither variant is set.
func (b BilingualText) IsEmpty() bool {
	return b.En == "" && b.Ar == ""
}

// Display returns the English variant, falling back to Arabic when no
// English label exists.
func (b BilingualText) Display() string {
	if b.En != "" {
		return b.En
	}
	return b.Ar
}

type PaymentType string

const (
	PaymentTypeCredit PaymentType = "credit"
	PaymentTypeCash   PaymentType = "cash"
)

type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

type MovementType string

const (
	MovementIn       MovementType = "in"
	MovementOut      MovementType = "out"
	MovementTransfer MovementType = "transfer"
)

// Supplier is a vendor the business purchases from.
type Supplier struct {
	ID               int           `json:"id"`
	Name             BilingualText `json:"name"`
	ContactPerson    string        `json:"contact_person"`
	Phone            string        `json:"phone"`
	Address          string        `json:"address"`
	PaymentTermsDays int           `json:"payment_terms_days"`
	Notes            string        `json:"notes"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
}

// InvoiceItem is one line on a purchase invoice.
// Total is always Quantity × UnitPrice, computed server-side.
type InvoiceItem struct {
	ID        int             `json:"id"`
	ItemName  BilingualText   `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Invoice is a purchase invoice from a supplier.
//
// A cash invoice is settled immediately: Status is always paid and DueDate
// is nil. A credit invoice starts pending and is derived overdue once its
// due date passes (see DeriveStatus). Payments are never allocated to
// individual invoices; settlement is tracked only at the aggregate supplier
// balance.
type Invoice struct {
	ID            int             `json:"id"`
	SupplierID    int             `json:"supplier_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	PaymentType   PaymentType     `json:"payment_type"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Payment is money paid out to a supplier. It reduces the supplier's
// outstanding balance but is not linked to any specific invoice.
type Payment struct {
	ID              int             `json:"id"`
	SupplierID      int             `json:"supplier_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Warehouse is a physical storage location.
type Warehouse struct {
	ID        int           `json:"id"`
	Name      BilingualText `json:"name"`
	Location  string        `json:"location"`
	Manager   string        `json:"manager"`
	Notes     string        `json:"notes"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
}

// StockMovement is a quantity delta against a warehouse's inventory.
type StockMovement struct {
	ID           int             `json:"id"`
	WarehouseID  int             `json:"warehouse_id"`
	ItemName     BilingualText   `json:"item_name"`
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reference    string          `json:"reference"`
	Notes        string          `json:"notes"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// User is an authenticated system user.
type User struct {
	ID           int           `json:"id"`
	Name         BilingualText `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	PasswordHash string        `json:"-"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
}
