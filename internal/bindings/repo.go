package bindings

import (
	"context"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BindingRepository is the persistence surface the binding service relies on.
type BindingRepository interface {
	WithTx(tx *gorm.DB) BindingRepository

	FindFaq(ctx context.Context, storeID, faqID uint64) (*models.Faq, error)

	RevokeProductExcept(ctx context.Context, storeID, productID, keepFaqID uint64) error
	UpsertProduct(ctx context.Context, faqID, storeID, productID uint64) (*models.FaqProductBinding, error)
	DeleteProduct(ctx context.Context, storeID, faqID, productID uint64) (int64, error)

	RevokeCategoryExcept(ctx context.Context, storeID, categoryID, keepFaqID uint64) error
	UpsertCategory(ctx context.Context, faqID, storeID uint64, input CategoryBindingInput) (*models.FaqCategoryBinding, error)
	DeleteCategory(ctx context.Context, storeID, faqID, categoryID uint64) (int64, error)
}

// Repository encapsulates binding persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a binding repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) BindingRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindFaq loads a FAQ scoped to the owning store.
func (r *Repository) FindFaq(ctx context.Context, storeID, faqID uint64) (*models.Faq, error) {
	var faq models.Faq
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", faqID, storeID).
		First(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// RevokeProductExcept clears any binding another FAQ in the store holds on the
// product.
func (r *Repository) RevokeProductExcept(ctx context.Context, storeID, productID, keepFaqID uint64) error {
	return r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ? AND faq_id <> ?", storeID, productID, keepFaqID).
		Delete(&models.FaqProductBinding{}).
		Error
}

// UpsertProduct inserts the binding and ignores duplicates for the same FAQ.
func (r *Repository) UpsertProduct(ctx context.Context, faqID, storeID, productID uint64) (*models.FaqProductBinding, error) {
	binding := &models.FaqProductBinding{FaqID: faqID, StoreID: storeID, ProductID: productID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "faq_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(binding).Error; err != nil {
		return nil, err
	}

	var stored models.FaqProductBinding
	if err := r.db.WithContext(ctx).
		Where("faq_id = ? AND product_id = ?", faqID, productID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteProduct removes the binding and reports how many rows went away.
func (r *Repository) DeleteProduct(ctx context.Context, storeID, faqID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("store_id = ? AND faq_id = ? AND product_id = ?", storeID, faqID, productID).
		Delete(&models.FaqProductBinding{})
	return res.RowsAffected, res.Error
}

// RevokeCategoryExcept clears any binding another FAQ in the store holds on
// the category.
func (r *Repository) RevokeCategoryExcept(ctx context.Context, storeID, categoryID, keepFaqID uint64) error {
	return r.db.WithContext(ctx).
		Where("store_id = ? AND category_id = ? AND faq_id <> ?", storeID, categoryID, keepFaqID).
		Delete(&models.FaqCategoryBinding{}).
		Error
}

// UpsertCategory inserts the binding or refreshes the stored handle when the
// FAQ is already attached.
func (r *Repository) UpsertCategory(ctx context.Context, faqID, storeID uint64, input CategoryBindingInput) (*models.FaqCategoryBinding, error) {
	binding := &models.FaqCategoryBinding{
		FaqID:          faqID,
		StoreID:        storeID,
		CategoryID:     input.CategoryID,
		CategoryHandle: input.CategoryHandle,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "faq_id"}, {Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"category_handle", "updated_at"}),
		}).
		Create(binding).Error; err != nil {
		return nil, err
	}

	var stored models.FaqCategoryBinding
	if err := r.db.WithContext(ctx).
		Where("faq_id = ? AND category_id = ?", faqID, input.CategoryID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteCategory removes the binding and reports how many rows went away.
func (r *Repository) DeleteCategory(ctx context.Context, storeID, faqID, categoryID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("store_id = ? AND faq_id = ? AND category_id = ?", storeID, faqID, categoryID).
		Delete(&models.FaqCategoryBinding{})
	return res.RowsAffected, res.Error
}
