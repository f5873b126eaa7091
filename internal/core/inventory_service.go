package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// WarehouseWithStock is a warehouse joined with its current stock quantity
// derived from the movement mini-ledger.
type WarehouseWithStock struct {
	Warehouse
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// InventoryService manages warehouses and their stock movements. Current
// stock is never stored; it is recomputed from the movement history on every
// read via the WarehouseStock fold.
type InventoryService interface {
	CreateWarehouse(ctx context.Context, input WarehouseInput) (*Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int, input WarehouseInput) (*Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int) error
	GetWarehouse(ctx context.Context, id int) (*Warehouse, error)
	// GetWarehousesWithStock returns all warehouses with their derived
	// current stock.
	GetWarehousesWithStock(ctx context.Context) ([]WarehouseWithStock, error)

	RecordMovement(ctx context.Context, input StockMovementInput) (*StockMovement, error)
	UpdateMovement(ctx context.Context, id int, input StockMovementInput) (*StockMovement, error)
	DeleteMovement(ctx context.Context, id int) error
	GetMovements(ctx context.Context) ([]StockMovement, error)
}

type inventoryService struct {
	pool *pgxpool.Pool
}

// NewInventoryService constructs an InventoryService backed by PostgreSQL.
func NewInventoryService(pool *pgxpool.Pool) InventoryService {
	return &inventoryService{pool: pool}
}

// ── Warehouses ────────────────────────────────────────────────────────────────

const warehouseColumns = `id, name, name_ar, location, manager, notes, is_active, created_at`

func scanWarehouse(row pgx.Row) (*Warehouse, error) {
	w := &Warehouse{}
	err := row.Scan(
		&w.ID, &w.Name.En, &w.Name.Ar, &w.Location, &w.Manager, &w.Notes, &w.IsActive, &w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *inventoryService) CreateWarehouse(ctx context.Context, input WarehouseInput) (*Warehouse, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("warehouse validation failed: %w: %v", ErrInvalid, err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO warehouses (name, name_ar, location, manager, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+warehouseColumns,
		input.Name, input.NameAr, input.Location, input.Manager, input.Notes, input.IsActive,
	)
	warehouse, err := scanWarehouse(row)
	if err != nil {
		return nil, fmt.Errorf("create warehouse: %w", err)
	}
	return warehouse, nil
}

func (s *inventoryService) UpdateWarehouse(ctx context.Context, id int, input WarehouseInput) (*Warehouse, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("warehouse validation failed: %w: %v", ErrInvalid, err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE warehouses
		SET name = $2, name_ar = $3, location = $4, manager = $5, notes = $6, is_active = $7
		WHERE id = $1
		RETURNING `+warehouseColumns,
		id, input.Name, input.NameAr, input.Location, input.Manager, input.Notes, input.IsActive,
	)
	warehouse, err := scanWarehouse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("warehouse %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update warehouse %d: %w", id, err)
	}
	return warehouse, nil
}

func (s *inventoryService) DeleteWarehouse(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM warehouses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete warehouse %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("warehouse %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *inventoryService) GetWarehouse(ctx context.Context, id int) (*Warehouse, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+warehouseColumns+" FROM warehouses WHERE id = $1", id)
	warehouse, err := scanWarehouse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("warehouse %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get warehouse %d: %w", id, err)
	}
	return warehouse, nil
}

func (s *inventoryService) GetWarehousesWithStock(ctx context.Context) ([]WarehouseWithStock, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+warehouseColumns+" FROM warehouses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []WarehouseWithStock
	for rows.Next() {
		var w WarehouseWithStock
		if err := rows.Scan(
			&w.ID, &w.Name.En, &w.Name.Ar, &w.Location, &w.Manager, &w.Notes, &w.IsActive, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warehouses: %w", err)
	}
	rows.Close()

	movements, err := s.GetMovements(ctx)
	if err != nil {
		return nil, err
	}
	for i := range warehouses {
		warehouses[i].CurrentStock = WarehouseStock(warehouses[i].ID, movements)
	}
	return warehouses, nil
}

// ── Stock movements ───────────────────────────────────────────────────────────

const movementColumns = `id, warehouse_id, item_name, item_name_ar, movement_type,
       quantity, reference, notes, created_by, created_at`

func scanMovement(row pgx.Row) (*StockMovement, error) {
	m := &StockMovement{}
	err := row.Scan(
		&m.ID, &m.WarehouseID, &m.ItemName.En, &m.ItemName.Ar, &m.MovementType,
		&m.Quantity, &m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *inventoryService) RecordMovement(ctx context.Context, input StockMovementInput) (*StockMovement, error) {
	mv, err := input.Movement()
	if err != nil {
		return nil, fmt.Errorf("stock movement validation failed: %w: %v", ErrInvalid, err)
	}
	if err := s.requireWarehouse(ctx, mv.WarehouseID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO stock_movements (warehouse_id, item_name, item_name_ar, movement_type,
		                             quantity, reference, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+movementColumns,
		mv.WarehouseID, mv.ItemName.En, mv.ItemName.Ar, mv.MovementType,
		mv.Quantity, mv.Reference, mv.Notes, mv.CreatedBy,
	)
	movement, err := scanMovement(row)
	if err != nil {
		return nil, fmt.Errorf("record stock movement: %w", err)
	}
	return movement, nil
}

func (s *inventoryService) UpdateMovement(ctx context.Context, id int, input StockMovementInput) (*StockMovement, error) {
	mv, err := input.Movement()
	if err != nil {
		return nil, fmt.Errorf("stock movement validation failed: %w: %v", ErrInvalid, err)
	}
	if err := s.requireWarehouse(ctx, mv.WarehouseID); err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE stock_movements
		SET warehouse_id = $2, item_name = $3, item_name_ar = $4, movement_type = $5,
		    quantity = $6, reference = $7, notes = $8
		WHERE id = $1
		RETURNING `+movementColumns,
		id, mv.WarehouseID, mv.ItemName.En, mv.ItemName.Ar, mv.MovementType,
		mv.Quantity, mv.Reference, mv.Notes,
	)
	movement, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stock movement %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update stock movement %d: %w", id, err)
	}
	return movement, nil
}

func (s *inventoryService) DeleteMovement(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM stock_movements WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete stock movement %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock movement %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *inventoryService) GetMovements(ctx context.Context) ([]StockMovement, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+movementColumns+" FROM stock_movements ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("get stock movements: %w", err)
	}
	defer rows.Close()

	var movements []StockMovement
	for rows.Next() {
		var m StockMovement
		if err := rows.Scan(
			&m.ID, &m.WarehouseID, &m.ItemName.En, &m.ItemName.Ar, &m.MovementType,
			&m.Quantity, &m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (s *inventoryService) requireWarehouse(ctx context.Context, warehouseID int) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM warehouses WHERE id = $1)", warehouseID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check warehouse %d: %w", warehouseID, err)
	}
	if !exists {
		return fmt.Errorf("warehouse %d: %w", warehouseID, ErrUnknownWarehouse)
	}
	return nil
}
