package faqs

import (
	"context"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FaqRepository is the persistence surface the FAQ service relies on.
type FaqRepository interface {
	WithTx(tx *gorm.DB) FaqRepository

	ListByStore(ctx context.Context, storeID uint64) ([]models.Faq, error)
	FindByID(ctx context.Context, storeID, faqID uint64) (*models.Faq, error)
	Create(ctx context.Context, faq *models.Faq) error
	Save(ctx context.Context, faq *models.Faq) error
	ClearHomepageExcept(ctx context.Context, storeID, keepFaqID uint64) error
	DeleteCascade(ctx context.Context, faq *models.Faq) error

	CreateQuestion(ctx context.Context, question *models.FaqQuestion) error
	FindQuestionScoped(ctx context.Context, storeID, questionID uint64) (*models.FaqQuestion, error)
	SaveQuestion(ctx context.Context, question *models.FaqQuestion) error
	DeleteQuestionScoped(ctx context.Context, storeID, questionID uint64) (int64, error)

	FindActiveByProduct(ctx context.Context, storeID, productID uint64) ([]models.Faq, error)
	FindActiveByCategoryHandle(ctx context.Context, storeID uint64, handle string) ([]models.Faq, error)
	FindActiveHomepage(ctx context.Context, storeID uint64) ([]models.Faq, error)
}

// Repository encapsulates FAQ persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a FAQ repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) FaqRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// questionOrder keeps question display order stable: "order" ascending with
// the row id as tie-break.
func questionOrder(db *gorm.DB) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

func (r *Repository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Questions", questionOrder).
		Preload("ProductBindings").
		Preload("CategoryBindings")
}

// ListByStore loads every FAQ the store owns, children included.
func (r *Repository) ListByStore(ctx context.Context, storeID uint64) ([]models.Faq, error) {
	var faqs []models.Faq
	if err := r.withChildren(ctx).
		Where("store_id = ?", storeID).
		Order("id ASC").
		Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// FindByID loads one FAQ scoped to the owning store, children included.
func (r *Repository) FindByID(ctx context.Context, storeID, faqID uint64) (*models.Faq, error) {
	var faq models.Faq
	if err := r.withChildren(ctx).
		Where("id = ? AND store_id = ?", faqID, storeID).
		First(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *Repository) Create(ctx context.Context, faq *models.Faq) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *Repository) Save(ctx context.Context, faq *models.Faq) error {
	return r.db.WithContext(ctx).Save(faq).Error
}

// ClearHomepageExcept drops the homepage flag from every other FAQ in the
// store, keeping the singleton invariant when one FAQ takes the flag over.
func (r *Repository) ClearHomepageExcept(ctx context.Context, storeID, keepFaqID uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Faq{}).
		Where("store_id = ? AND id <> ? AND show_on_homepage = ?", storeID, keepFaqID, true).
		Update("show_on_homepage", false).
		Error
}

// DeleteCascade removes the FAQ and all of its children. Explicit child
// deletes keep the behavior identical across postgres and the sqlite test
// databases, where foreign key enforcement is off by default.
func (r *Repository) DeleteCascade(ctx context.Context, faq *models.Faq) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("faq_id = ?", faq.ID).Delete(&models.FaqQuestion{}).Error; err != nil {
		return err
	}
	if err := tx.Where("faq_id = ?", faq.ID).Delete(&models.FaqProductBinding{}).Error; err != nil {
		return err
	}
	if err := tx.Where("faq_id = ?", faq.ID).Delete(&models.FaqCategoryBinding{}).Error; err != nil {
		return err
	}
	return tx.Delete(faq).Error
}

func (r *Repository) CreateQuestion(ctx context.Context, question *models.FaqQuestion) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// FindQuestionScoped locates a question by id while verifying its parent FAQ
// belongs to the store, in a single query. A hit under another tenant reads
// as absent.
func (r *Repository) FindQuestionScoped(ctx context.Context, storeID, questionID uint64) (*models.FaqQuestion, error) {
	var question models.FaqQuestion
	if err := r.db.WithContext(ctx).
		Where("id = ? AND faq_id IN (?)", questionID,
			r.db.Model(&models.Faq{}).Select("id").Where("store_id = ?", storeID)).
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *Repository) SaveQuestion(ctx context.Context, question *models.FaqQuestion) error {
	return r.db.WithContext(ctx).Save(question).Error
}

// DeleteQuestionScoped deletes a question under the same tenant predicate as
// FindQuestionScoped and reports how many rows went away.
func (r *Repository) DeleteQuestionScoped(ctx context.Context, storeID, questionID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND faq_id IN (?)", questionID,
			r.db.Model(&models.Faq{}).Select("id").Where("store_id = ?", storeID)).
		Delete(&models.FaqQuestion{})
	return res.RowsAffected, res.Error
}

// FindActiveByProduct loads the active FAQs bound to the product, lowest id
// first. The exclusivity backstop keeps this at one row; callers treat extra
// rows as an inconsistency signal.
func (r *Repository) FindActiveByProduct(ctx context.Context, storeID, productID uint64) ([]models.Faq, error) {
	var faqs []models.Faq
	if err := r.db.WithContext(ctx).
		Preload("Questions", questionOrder).
		Where("active = ? AND id IN (?)", true,
			r.db.Model(&models.FaqProductBinding{}).Select("faq_id").
				Where("store_id = ? AND product_id = ?", storeID, productID)).
		Order("id ASC").
		Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// FindActiveByCategoryHandle matches on the denormalized category handle.
func (r *Repository) FindActiveByCategoryHandle(ctx context.Context, storeID uint64, handle string) ([]models.Faq, error) {
	var faqs []models.Faq
	if err := r.db.WithContext(ctx).
		Preload("Questions", questionOrder).
		Where("active = ? AND id IN (?)", true,
			r.db.Model(&models.FaqCategoryBinding{}).Select("faq_id").
				Where("store_id = ? AND category_handle = ?", storeID, handle)).
		Order("id ASC").
		Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// FindActiveHomepage loads the store's homepage FAQ when one is flagged.
func (r *Repository) FindActiveHomepage(ctx context.Context, storeID uint64) ([]models.Faq, error) {
	var faqs []models.Faq
	if err := r.db.WithContext(ctx).
		Preload("Questions", questionOrder).
		Where("store_id = ? AND active = ? AND show_on_homepage = ?", storeID, true, true).
		Order("id ASC").
		Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}
