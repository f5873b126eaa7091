// seed resets the database to the demo dataset: four suppliers, six
// invoices with their line items, four payments, two warehouses, three
// stock movements, and three users.
//
// All users get the password from SEED_PASSWORD (default "changeme").
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"

	"github.com/AhmedGad3/construction-erp/internal/db"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("begin transaction")
	}
	defer tx.Rollback(ctx)

	log.Info().Msg("clearing existing data")
	_, err = tx.Exec(ctx, `
		TRUNCATE invoice_items, invoices, payments, stock_movements,
		         warehouses, suppliers, users RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("truncate")
	}

	log.Info().Msg("seeding users")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (name, name_ar, email, role, password_hash) VALUES
		('Ahmed Mohamed', 'أحمد محمد', 'ahmed@company.com', 'admin', $1),
		('Sara Ali', 'سارة علي', 'sara@company.com', 'accountant', $1),
		('Mohamed Hassan', 'محمد حسن', 'mohamed@company.com', 'manager', $1);
	`, string(hash))
	if err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}

	log.Info().Msg("seeding suppliers")
	_, err = tx.Exec(ctx, `
		INSERT INTO suppliers (name, name_ar, contact_person, phone, address, payment_terms_days, notes, created_at) VALUES
		('Nile Materials Co.', 'شركة النيل للمواد', 'Ahmed Hassan', '+20 100 123 4567', 'Cairo, Egypt', 60, 'Main supplier for construction materials', '2024-01-15'),
		('Ahram Steel', 'مؤسسة الأهرام للحديد', 'Mohamed Ali', '+20 101 234 5678', 'Alexandria, Egypt', 60, 'Steel and metal supplies', '2024-02-01'),
		('Al Shorouk Stores', 'محلات الشروق', 'Fatima Ibrahim', '+20 102 345 6789', 'Giza, Egypt', 60, 'Paint and finishing materials', '2024-02-10'),
		('Cairo Construction Supplies', 'مستلزمات البناء القاهرة', 'Omar Khaled', '+20 103 456 7890', 'Cairo, Egypt', 60, 'General construction supplies', '2024-03-01');
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("seed suppliers")
	}

	log.Info().Msg("seeding invoices")
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (supplier_id, invoice_number, invoice_date, payment_type, due_date, total_amount, status, notes, created_by) VALUES
		(1, 'INV-2024-001', '2024-10-01', 'credit', '2024-11-30', 95000, 'pending', 'Monthly supply', 'Admin'),
		(2, 'INV-2024-002', '2024-09-15', 'credit', '2024-11-14', 100000, 'pending', 'Steel reinforcement', 'Admin'),
		(1, 'INV-2024-003', '2024-11-01', 'cash', NULL, 9000, 'paid', 'Cash purchase', 'Admin'),
		(3, 'INV-2024-004', '2024-10-20', 'credit', '2024-12-19', 8500, 'pending', 'Finishing materials', 'Admin'),
		(2, 'INV-2024-005', '2024-10-05', 'credit', '2024-12-04', 25000, 'pending', 'Additional steel', 'Admin'),
		(4, 'INV-2024-006', '2024-11-10', 'credit', '2025-01-09', 22000, 'pending', 'Construction supplies', 'Admin');
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("seed invoices")
	}

	log.Info().Msg("seeding invoice items")
	_, err = tx.Exec(ctx, `
		INSERT INTO invoice_items (invoice_id, item_name, item_name_ar, quantity, unit_price, total) VALUES
		(1, 'Cement', 'أسمنت', 100, 850, 85000),
		(1, 'Sand', 'رمل', 50, 200, 10000),
		(2, 'Steel Bars', 'حديد تسليح', 20, 5000, 100000),
		(3, 'Gravel', 'زلط', 30, 300, 9000),
		(4, 'Paint', 'دهانات', 50, 150, 7500),
		(4, 'Brushes', 'فرش', 20, 50, 1000),
		(5, 'Steel Bars', 'حديد تسليح', 5, 5000, 25000),
		(6, 'Tiles', 'سيراميك', 200, 80, 16000),
		(6, 'Electrical Supplies', 'مستلزمات كهربائية', 30, 200, 6000);
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("seed invoice items")
	}

	log.Info().Msg("seeding payments")
	_, err = tx.Exec(ctx, `
		INSERT INTO payments (supplier_id, amount, payment_date, payment_method, reference_number, notes, created_by) VALUES
		(1, 45000, '2024-10-15', 'bank_transfer', 'TRF-2024-001', 'Partial payment', 'Admin'),
		(3, 8500, '2024-10-25', 'cash', '', 'Full payment', 'Admin'),
		(1, 5000, '2024-11-05', 'check', 'CHK-2024-001', 'Check payment', 'Admin'),
		(4, 10000, '2024-11-12', 'bank_transfer', 'TRF-2024-002', 'Partial payment', 'Admin');
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("seed payments")
	}

	log.Info().Msg("seeding warehouses")
	_, err = tx.Exec(ctx, `
		INSERT INTO warehouses (name, name_ar, location, manager, notes, created_at) VALUES
		('Main Warehouse', 'المخزن الرئيسي', 'Cairo', 'Ahmed Mohamed', 'Main storage facility', '2024-01-01'),
		('Site Warehouse A', 'مخزن الموقع أ', 'Giza', 'Sara Ali', 'Construction site storage', '2024-02-01');
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("seed warehouses")
	}

	log.Info().Msg("seeding stock movements")
	_, err = tx.Exec(ctx, `
		INSERT INTO stock_movements (warehouse_id, item_name, item_name_ar, movement_type, quantity, reference, notes, created_by, created_at) VALUES
		(1, 'Cement', 'أسمنت', 'in', 100, 'INV-2024-001', 'From purchase invoice', 'Admin', '2024-10-01'),
		(1, 'Steel Bars', 'حديد تسليح', 'in', 20, 'INV-2024-002', 'From purchase invoice', 'Admin', '2024-09-15'),
		(1, 'Cement', 'أسمنت', 'out', 30, 'TRF-001', 'Transferred to site', 'Admin', '2024-10-10');
	`)
	if err != nil {
		log.Fatal().Err(err).Msg("seed stock movements")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("commit")
	}
	log.Info().Msg("seed complete")
}
