package bindings

import (
	"context"
	"fmt"
	"testing"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx.WithContext(ctx))
	})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Faq{}, &models.FaqQuestion{}, &models.FaqProductBinding{}, &models.FaqCategoryBinding{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), testTxRunner{db: conn})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func seedFaq(t *testing.T, conn *gorm.DB, storeID uint64, title string) *models.Faq {
	t.Helper()
	faq := &models.Faq{StoreID: storeID, Title: title, Active: true}
	if err := conn.Create(faq).Error; err != nil {
		t.Fatalf("seed faq: %v", err)
	}
	return faq
}

func handlePtr(v string) *string { return &v }

func TestAddProductBindingIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Envio")

	first, err := svc.AddProductBinding(context.Background(), 100, faq.ID, 9001)
	if err != nil {
		t.Fatalf("add binding: %v", err)
	}
	second, err := svc.AddProductBinding(context.Background(), 100, faq.ID, 9001)
	if err != nil {
		t.Fatalf("re-add binding: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected idempotent add to return the same row, got %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := conn.Model(&models.FaqProductBinding{}).Count(&count).Error; err != nil {
		t.Fatalf("count bindings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single binding row, got %d", count)
	}
}

func TestAddProductBindingStealsFromSiblingFaq(t *testing.T) {
	svc, conn := newTestService(t)
	first := seedFaq(t, conn, 100, "Envio")
	second := seedFaq(t, conn, 100, "Trocas")

	if _, err := svc.AddProductBinding(context.Background(), 100, first.ID, 9001); err != nil {
		t.Fatalf("bind first faq: %v", err)
	}
	binding, err := svc.AddProductBinding(context.Background(), 100, second.ID, 9001)
	if err != nil {
		t.Fatalf("bind second faq: %v", err)
	}
	if binding.FaqID != second.ID {
		t.Fatalf("expected binding moved to faq %d, got %d", second.ID, binding.FaqID)
	}

	var rows []models.FaqProductBinding
	if err := conn.Where("product_id = ?", 9001).Find(&rows).Error; err != nil {
		t.Fatalf("list bindings: %v", err)
	}
	if len(rows) != 1 || rows[0].FaqID != second.ID {
		t.Fatalf("expected exactly one binding on the second faq, got %+v", rows)
	}
}

func TestAddProductBindingKeepsStoresIsolated(t *testing.T) {
	svc, conn := newTestService(t)
	storeAFaq := seedFaq(t, conn, 100, "Envio")
	storeBFaq := seedFaq(t, conn, 200, "Shipping")

	if _, err := svc.AddProductBinding(context.Background(), 100, storeAFaq.ID, 9001); err != nil {
		t.Fatalf("bind store A: %v", err)
	}
	if _, err := svc.AddProductBinding(context.Background(), 200, storeBFaq.ID, 9001); err != nil {
		t.Fatalf("bind store B: %v", err)
	}

	var count int64
	if err := conn.Model(&models.FaqProductBinding{}).Where("product_id = ?", 9001).Count(&count).Error; err != nil {
		t.Fatalf("count bindings: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected one binding per store, got %d", count)
	}
}

func TestAddProductBindingRejectsForeignFaq(t *testing.T) {
	svc, conn := newTestService(t)
	foreign := seedFaq(t, conn, 200, "Shipping")

	_, err := svc.AddProductBinding(context.Background(), 100, foreign.ID, 9001)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign faq, got %v", err)
	}
}

func TestRemoveProductBinding(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Envio")

	err := svc.RemoveProductBinding(context.Background(), 100, faq.ID, 9001)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for absent binding, got %v", err)
	}

	if _, err := svc.AddProductBinding(context.Background(), 100, faq.ID, 9001); err != nil {
		t.Fatalf("add binding: %v", err)
	}
	if err := svc.RemoveProductBinding(context.Background(), 100, faq.ID, 9001); err != nil {
		t.Fatalf("remove binding: %v", err)
	}

	var count int64
	if err := conn.Model(&models.FaqProductBinding{}).Count(&count).Error; err != nil {
		t.Fatalf("count bindings: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected binding removed, got %d rows", count)
	}
}

func TestRemoveProductBindingRequiresOwnedFaq(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.RemoveProductBinding(context.Background(), 100, 12345, 9001)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddCategoryBindingUpdatesHandle(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Promoções")

	first, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("promocoes")})
	if err != nil {
		t.Fatalf("add category binding: %v", err)
	}
	if first.CategoryHandle == nil || *first.CategoryHandle != "promocoes" {
		t.Fatalf("unexpected handle %v", first.CategoryHandle)
	}

	second, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("promocoes-inverno")})
	if err != nil {
		t.Fatalf("re-add category binding: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same binding row, got %d and %d", first.ID, second.ID)
	}
	if second.CategoryHandle == nil || *second.CategoryHandle != "promocoes-inverno" {
		t.Fatalf("expected handle refreshed, got %v", second.CategoryHandle)
	}
}

func TestAddCategoryBindingAcceptsMissingHandle(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Promoções")

	binding, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77})
	if err != nil {
		t.Fatalf("add category binding without handle: %v", err)
	}
	if binding.CategoryHandle != nil {
		t.Fatalf("expected no handle stored, got %v", binding.CategoryHandle)
	}

	// blank handles collapse to absent
	binding, err = svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("   ")})
	if err != nil {
		t.Fatalf("add category binding with blank handle: %v", err)
	}
	if binding.CategoryHandle != nil {
		t.Fatalf("expected blank handle dropped, got %v", binding.CategoryHandle)
	}
}

func TestAddCategoryBindingClearsHandleOnRebind(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Promoções")

	if _, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("promocoes")}); err != nil {
		t.Fatalf("add category binding: %v", err)
	}
	binding, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77})
	if err != nil {
		t.Fatalf("re-add category binding: %v", err)
	}
	if binding.CategoryHandle != nil {
		t.Fatalf("expected handle cleared by latest attach, got %v", binding.CategoryHandle)
	}

	var stored models.FaqCategoryBinding
	if err := conn.Where("category_id = ?", 77).First(&stored).Error; err != nil {
		t.Fatalf("load binding: %v", err)
	}
	if stored.CategoryHandle != nil {
		t.Fatalf("expected NULL handle persisted, got %v", stored.CategoryHandle)
	}
}

func TestAddCategoryBindingStealsFromSiblingFaq(t *testing.T) {
	svc, conn := newTestService(t)
	first := seedFaq(t, conn, 100, "Promoções")
	second := seedFaq(t, conn, 100, "Geral")

	if _, err := svc.AddCategoryBinding(context.Background(), 100, first.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("promocoes")}); err != nil {
		t.Fatalf("bind first faq: %v", err)
	}
	binding, err := svc.AddCategoryBinding(context.Background(), 100, second.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("promocoes")})
	if err != nil {
		t.Fatalf("bind second faq: %v", err)
	}
	if binding.FaqID != second.ID {
		t.Fatalf("expected binding moved to faq %d, got %d", second.ID, binding.FaqID)
	}

	var count int64
	if err := conn.Model(&models.FaqCategoryBinding{}).Where("category_id = ?", 77).Count(&count).Error; err != nil {
		t.Fatalf("count bindings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single binding after steal, got %d", count)
	}
}

func TestAddCategoryBindingValidatesInput(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Promoções")

	_, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 0, CategoryHandle: handlePtr("x")})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing category id, got %v", err)
	}
}

func TestRemoveCategoryBinding(t *testing.T) {
	svc, conn := newTestService(t)
	faq := seedFaq(t, conn, 100, "Promoções")

	if _, err := svc.AddCategoryBinding(context.Background(), 100, faq.ID, CategoryBindingInput{CategoryID: 77, CategoryHandle: handlePtr("promocoes")}); err != nil {
		t.Fatalf("add binding: %v", err)
	}
	if err := svc.RemoveCategoryBinding(context.Background(), 100, faq.ID, 77); err != nil {
		t.Fatalf("remove binding: %v", err)
	}

	err := svc.RemoveCategoryBinding(context.Background(), 100, faq.ID, 77)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat removal, got %v", err)
	}

	var count int64
	if err := conn.Model(&models.FaqCategoryBinding{}).Count(&count).Error; err != nil {
		t.Fatalf("count bindings: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected binding removed, got %d rows", count)
	}
}
