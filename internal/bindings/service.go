package bindings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nexofaq/nexofaq-backend/pkg/db"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes FAQ binding operations. Every attach revokes the binding
// any sibling FAQ holds on the same target, so one product or category never
// answers with two FAQs.
type Service interface {
	AddProductBinding(ctx context.Context, storeID, faqID, productID uint64) (*ProductBindingDTO, error)
	RemoveProductBinding(ctx context.Context, storeID, faqID, productID uint64) error
	AddCategoryBinding(ctx context.Context, storeID, faqID uint64, input CategoryBindingInput) (*CategoryBindingDTO, error)
	RemoveCategoryBinding(ctx context.Context, storeID, faqID, categoryID uint64) error
}

type service struct {
	repo BindingRepository
	tx   txRunner
}

// NewService builds a binding service with the provided dependencies.
func NewService(repo BindingRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("binding repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) AddProductBinding(ctx context.Context, storeID, faqID, productID uint64) (*ProductBindingDTO, error) {
	if storeID == 0 || faqID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and faq ids are required")
	}
	if productID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var dto *ProductBindingDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindFaq(ctx, storeID, faqID); err != nil {
			return faqLookupError(err)
		}
		if err := repo.RevokeProductExcept(ctx, storeID, productID, faqID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke product binding")
		}

		binding, err := repo.UpsertProduct(ctx, faqID, storeID, productID)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product binding raced").
					WithDetails(map[string]any{"product_id": productID})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert product binding")
		}

		dto = FromProductModel(binding)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) RemoveProductBinding(ctx context.Context, storeID, faqID, productID uint64) error {
	if storeID == 0 || faqID == 0 || productID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "store, faq and product ids are required")
	}

	if _, err := s.repo.FindFaq(ctx, storeID, faqID); err != nil {
		return faqLookupError(err)
	}
	deleted, err := s.repo.DeleteProduct(ctx, storeID, faqID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product binding")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product binding not found")
	}
	return nil
}

func (s *service) AddCategoryBinding(ctx context.Context, storeID, faqID uint64, input CategoryBindingInput) (*CategoryBindingDTO, error) {
	if storeID == 0 || faqID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and faq ids are required")
	}
	if input.CategoryID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if input.CategoryHandle != nil {
		trimmed := strings.TrimSpace(*input.CategoryHandle)
		if trimmed == "" {
			input.CategoryHandle = nil
		} else {
			input.CategoryHandle = &trimmed
		}
	}

	var dto *CategoryBindingDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindFaq(ctx, storeID, faqID); err != nil {
			return faqLookupError(err)
		}
		if err := repo.RevokeCategoryExcept(ctx, storeID, input.CategoryID, faqID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke category binding")
		}

		binding, err := repo.UpsertCategory(ctx, faqID, storeID, input)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category binding raced").
					WithDetails(map[string]any{"category_id": input.CategoryID})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert category binding")
		}

		dto = FromCategoryModel(binding)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) RemoveCategoryBinding(ctx context.Context, storeID, faqID, categoryID uint64) error {
	if storeID == 0 || faqID == 0 || categoryID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "store, faq and category ids are required")
	}

	if _, err := s.repo.FindFaq(ctx, storeID, faqID); err != nil {
		return faqLookupError(err)
	}
	deleted, err := s.repo.DeleteCategory(ctx, storeID, faqID, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category binding")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category binding not found")
	}
	return nil
}

func faqLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load faq")
}
