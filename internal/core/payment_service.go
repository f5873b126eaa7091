package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentService provides supplier payment operations. Payments reduce the
// supplier's aggregate balance; they are never allocated to an invoice.
type PaymentService interface {
	CreatePayment(ctx context.Context, input PaymentInput) (*Payment, error)
	UpdatePayment(ctx context.Context, id int, input PaymentInput) (*Payment, error)
	DeletePayment(ctx context.Context, id int) error
	GetPayment(ctx context.Context, id int) (*Payment, error)
	GetPayments(ctx context.Context) ([]Payment, error)
}

type paymentService struct {
	pool      *pgxpool.Pool
	suppliers SupplierService
}

// NewPaymentService constructs a PaymentService backed by PostgreSQL.
func NewPaymentService(pool *pgxpool.Pool, suppliers SupplierService) PaymentService {
	return &paymentService{pool: pool, suppliers: suppliers}
}

const paymentColumns = `id, supplier_id, amount, payment_date, payment_method,
       reference_number, notes, created_by, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID, &p.SupplierID, &p.Amount, &p.PaymentDate, &p.PaymentMethod,
		&p.ReferenceNumber, &p.Notes, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, input PaymentInput) (*Payment, error) {
	pay, err := input.Payment()
	if err != nil {
		return nil, fmt.Errorf("payment validation failed: %w: %v", ErrInvalid, err)
	}
	if err := s.requireSupplier(ctx, pay.SupplierID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO payments (supplier_id, amount, payment_date, payment_method,
		                      reference_number, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+paymentColumns,
		pay.SupplierID, pay.Amount, pay.PaymentDate, pay.PaymentMethod,
		pay.ReferenceNumber, pay.Notes, pay.CreatedBy,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, id int, input PaymentInput) (*Payment, error) {
	pay, err := input.Payment()
	if err != nil {
		return nil, fmt.Errorf("payment validation failed: %w: %v", ErrInvalid, err)
	}
	if err := s.requireSupplier(ctx, pay.SupplierID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE payments
		SET supplier_id = $2, amount = $3, payment_date = $4, payment_method = $5,
		    reference_number = $6, notes = $7
		WHERE id = $1
		RETURNING `+paymentColumns,
		id, pay.SupplierID, pay.Amount, pay.PaymentDate, pay.PaymentMethod,
		pay.ReferenceNumber, pay.Notes,
	)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update payment %d: %w", id, err)
	}
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int) (*Payment, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id = $1", id)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return payment, nil
}

func (s *paymentService) GetPayments(ctx context.Context) ([]Payment, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+paymentColumns+" FROM payments ORDER BY payment_date, id")
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.SupplierID, &p.Amount, &p.PaymentDate, &p.PaymentMethod,
			&p.ReferenceNumber, &p.Notes, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *paymentService) requireSupplier(ctx context.Context, supplierID int) error {
	exists, err := s.suppliers.SupplierExists(ctx, supplierID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("supplier %d: %w", supplierID, ErrUnknownSupplier)
	}
	return nil
}
