package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceService provides purchase invoice operations. An invoice and its
// line items are always written in one transaction, so a failed line insert
// rolls back the whole invoice.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error)
	UpdateInvoice(ctx context.Context, id int, input InvoiceInput) (*Invoice, error)
	DeleteInvoice(ctx context.Context, id int) error
	GetInvoice(ctx context.Context, id int) (*Invoice, error)
	GetInvoices(ctx context.Context) ([]Invoice, error)
	// MarkPaid explicitly settles an invoice. This is the only path to the
	// paid status for credit invoices; payments never flip it automatically.
	MarkPaid(ctx context.Context, id int) (*Invoice, error)
}

type invoiceService struct {
	pool      *pgxpool.Pool
	suppliers SupplierService
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool, suppliers SupplierService) InvoiceService {
	return &invoiceService{pool: pool, suppliers: suppliers}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	inv, err := input.Invoice()
	if err != nil {
		return nil, fmt.Errorf("invoice validation failed: %w: %v", ErrInvalid, err)
	}
	if err := s.requireSupplier(ctx, inv.SupplierID); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (supplier_id, invoice_number, invoice_date, payment_type,
		                      due_date, total_amount, status, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		inv.SupplierID, inv.InvoiceNumber, inv.InvoiceDate, inv.PaymentType,
		inv.DueDate, inv.TotalAmount, inv.Status, inv.Notes, inv.CreatedBy,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	if err := insertItems(ctx, tx, inv.ID, inv.Items); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit invoice: %w", err)
	}
	return s.GetInvoice(ctx, inv.ID)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id int, input InvoiceInput) (*Invoice, error) {
	inv, err := input.Invoice()
	if err != nil {
		return nil, fmt.Errorf("invoice validation failed: %w: %v", ErrInvalid, err)
	}
	if err := s.requireSupplier(ctx, inv.SupplierID); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Replace the invoice row and its full item set atomically. The stored
	// status survives an update only when it is a manual paid mark on a
	// credit invoice.
	var current InvoiceStatus
	err = tx.QueryRow(ctx, "SELECT status FROM invoices WHERE id = $1", id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch invoice %d: %w", id, err)
	}
	if inv.PaymentType == PaymentTypeCredit && current == StatusPaid {
		inv.Status = StatusPaid
	}

	_, err = tx.Exec(ctx, `
		UPDATE invoices
		SET supplier_id = $2, invoice_number = $3, invoice_date = $4, payment_type = $5,
		    due_date = $6, total_amount = $7, status = $8, notes = $9, created_by = $10
		WHERE id = $1`,
		id, inv.SupplierID, inv.InvoiceNumber, inv.InvoiceDate, inv.PaymentType,
		inv.DueDate, inv.TotalAmount, inv.Status, inv.Notes, inv.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("update invoice %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", id); err != nil {
		return nil, fmt.Errorf("clear invoice items: %w", err)
	}
	if err := insertItems(ctx, tx, id, inv.Items); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit invoice update: %w", err)
	}
	return s.GetInvoice(ctx, id)
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID int, items []InvoiceItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, item_name, item_name_ar, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			invoiceID, item.ItemName.En, item.ItemName.Ar, item.Quantity, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return nil
}

const invoiceColumns = `id, supplier_id, invoice_number, invoice_date, payment_type,
       due_date, total_amount, status, notes, created_by, created_at`

func (s *invoiceService) GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	inv := &Invoice{}
	err := s.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id,
	).Scan(
		&inv.ID, &inv.SupplierID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.PaymentType,
		&inv.DueDate, &inv.TotalAmount, &inv.Status, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (s *invoiceService) loadItems(ctx context.Context, invoiceID int) ([]InvoiceItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, item_name, item_name_ar, quantity, unit_price, total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	defer rows.Close()

	var items []InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.ItemName.En, &it.ItemName.Ar, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *invoiceService) GetInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+invoiceColumns+" FROM invoices ORDER BY invoice_date, id")
	if err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	index := map[int]int{}
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(
			&inv.ID, &inv.SupplierID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.PaymentType,
			&inv.DueDate, &inv.TotalAmount, &inv.Status, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		index[inv.ID] = len(invoices)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	rows.Close()

	itemRows, err := s.pool.Query(ctx, `
		SELECT invoice_id, id, item_name, item_name_ar, quantity, unit_price, total
		FROM invoice_items
		ORDER BY invoice_id, id`)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var invoiceID int
		var it InvoiceItem
		if err := itemRows.Scan(&invoiceID, &it.ID, &it.ItemName.En, &it.ItemName.Ar, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		if i, ok := index[invoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, it)
		}
	}
	return invoices, itemRows.Err()
}

func (s *invoiceService) MarkPaid(ctx context.Context, id int) (*Invoice, error) {
	tag, err := s.pool.Exec(ctx,
		"UPDATE invoices SET status = $2 WHERE id = $1", id, StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("mark invoice %d paid: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return s.GetInvoice(ctx, id)
}

func (s *invoiceService) requireSupplier(ctx context.Context, supplierID int) error {
	exists, err := s.suppliers.SupplierExists(ctx, supplierID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("supplier %d: %w", supplierID, ErrUnknownSupplier)
	}
	return nil
}
