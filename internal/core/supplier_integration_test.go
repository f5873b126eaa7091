package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AhmedGad3/construction-erp/internal/core"
)

func TestSupplierService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewSupplierService(pool)

	var createdID int

	t.Run("Create", func(t *testing.T) {
		s, err := svc.CreateSupplier(ctx, core.SupplierInput{
			Name:             "Nile Materials Co.",
			NameAr:           "شركة النيل للمواد",
			ContactPerson:    "Ahmed Hassan",
			Phone:            "+20 100 123 4567",
			Address:          "Cairo, Egypt",
			PaymentTermsDays: 60,
			IsActive:         true,
		})
		if err != nil {
			t.Fatalf("CreateSupplier: %v", err)
		}
		if s.ID == 0 {
			t.Fatal("expected supplier ID to be set")
		}
		if s.Name.En != "Nile Materials Co." || s.Name.Ar != "شركة النيل للمواد" {
			t.Errorf("name mismatch: %+v", s.Name)
		}
		if s.PaymentTermsDays != 60 {
			t.Errorf("payment_terms_days = %d, want 60", s.PaymentTermsDays)
		}
		createdID = s.ID
	})

	t.Run("Create_RejectsNameless", func(t *testing.T) {
		_, err := svc.CreateSupplier(ctx, core.SupplierInput{ContactPerson: "nobody"})
		if err == nil {
			t.Error("expected validation error for supplier with no name")
		}
		if !errors.Is(err, core.ErrInvalid) {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		s, err := svc.GetSupplier(ctx, createdID)
		if err != nil {
			t.Fatalf("GetSupplier: %v", err)
		}
		if s.ContactPerson != "Ahmed Hassan" {
			t.Errorf("contact = %q, want Ahmed Hassan", s.ContactPerson)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := svc.GetSupplier(ctx, 9999)
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		s, err := svc.UpdateSupplier(ctx, createdID, core.SupplierInput{
			Name:             "Nile Materials Co.",
			NameAr:           "شركة النيل للمواد",
			ContactPerson:    "Omar Khaled",
			PaymentTermsDays: 30,
			IsActive:         true,
		})
		if err != nil {
			t.Fatalf("UpdateSupplier: %v", err)
		}
		if s.ContactPerson != "Omar Khaled" || s.PaymentTermsDays != 30 {
			t.Errorf("update not applied: %+v", s)
		}
	})

	t.Run("List", func(t *testing.T) {
		suppliers, err := svc.GetSuppliers(ctx)
		if err != nil {
			t.Fatalf("GetSuppliers: %v", err)
		}
		if len(suppliers) != 1 {
			t.Errorf("expected 1 supplier, got %d", len(suppliers))
		}
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := svc.SupplierExists(ctx, createdID)
		if err != nil || !ok {
			t.Errorf("SupplierExists(%d) = %v, %v; want true", createdID, ok, err)
		}
		ok, err = svc.SupplierExists(ctx, 9999)
		if err != nil || ok {
			t.Errorf("SupplierExists(9999) = %v, %v; want false", ok, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := svc.DeleteSupplier(ctx, createdID); err != nil {
			t.Fatalf("DeleteSupplier: %v", err)
		}
		if _, err := svc.GetSupplier(ctx, createdID); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		if err := svc.DeleteSupplier(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
