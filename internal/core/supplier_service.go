package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SupplierService provides supplier master data operations. Deleting a
// supplier does not cascade to its invoices or payments; the ledger engine
// tolerates the dangling references on read.
type SupplierService interface {
	CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id int, input SupplierInput) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error
	GetSupplier(ctx context.Context, id int) (*Supplier, error)
	GetSuppliers(ctx context.Context) ([]Supplier, error)
	SupplierExists(ctx context.Context, id int) (bool, error)
}

type supplierService struct {
	pool *pgxpool.Pool
}

// NewSupplierService constructs a SupplierService backed by PostgreSQL.
func NewSupplierService(pool *pgxpool.Pool) SupplierService {
	return &supplierService{pool: pool}
}

const supplierColumns = `id, name, name_ar, contact_person, phone, address,
       payment_terms_days, notes, is_active, created_at`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	s := &Supplier{}
	err := row.Scan(
		&s.ID, &s.Name.En, &s.Name.Ar, &s.ContactPerson, &s.Phone, &s.Address,
		&s.PaymentTermsDays, &s.Notes, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("supplier validation failed: %w: %v", ErrInvalid, err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, name_ar, contact_person, phone, address,
		                       payment_terms_days, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+supplierColumns,
		input.Name, input.NameAr, input.ContactPerson, input.Phone, input.Address,
		input.PaymentTermsDays, input.Notes, input.IsActive,
	)
	supplier, err := scanSupplier(row)
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id int, input SupplierInput) (*Supplier, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("supplier validation failed: %w: %v", ErrInvalid, err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $2, name_ar = $3, contact_person = $4, phone = $5, address = $6,
		    payment_terms_days = $7, notes = $8, is_active = $9
		WHERE id = $1
		RETURNING `+supplierColumns,
		id, input.Name, input.NameAr, input.ContactPerson, input.Phone, input.Address,
		input.PaymentTermsDays, input.Notes, input.IsActive,
	)
	supplier, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update supplier %d: %w", id, err)
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete supplier %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id int) (*Supplier, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+supplierColumns+" FROM suppliers WHERE id = $1", id)
	supplier, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get supplier %d: %w", id, err)
	}
	return supplier, nil
}

func (s *supplierService) GetSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+supplierColumns+" FROM suppliers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(
			&sup.ID, &sup.Name.En, &sup.Name.Ar, &sup.ContactPerson, &sup.Phone, &sup.Address,
			&sup.PaymentTermsDays, &sup.Notes, &sup.IsActive, &sup.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

func (s *supplierService) SupplierExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check supplier %d: %w", id, err)
	}
	return exists, nil
}
