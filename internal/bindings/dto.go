package bindings

import (
	"time"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
)

// ProductBindingDTO exposes a FAQ-to-product attachment.
type ProductBindingDTO struct {
	ID        uint64    `json:"id"`
	FaqID     uint64    `json:"faq_id"`
	ProductID uint64    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryBindingDTO exposes a FAQ-to-category attachment.
type CategoryBindingDTO struct {
	ID             uint64    `json:"id"`
	FaqID          uint64    `json:"faq_id"`
	CategoryID     uint64    `json:"category_id"`
	CategoryHandle *string   `json:"category_handle"`
	CreatedAt      time.Time `json:"created_at"`
}

// CategoryBindingInput carries the attach payload for a category. The handle
// is optional; the stored value always reflects the latest attach.
type CategoryBindingInput struct {
	CategoryID     uint64
	CategoryHandle *string
}

// FromProductModel maps the persisted binding into a DTO.
func FromProductModel(m *models.FaqProductBinding) *ProductBindingDTO {
	if m == nil {
		return nil
	}
	return &ProductBindingDTO{
		ID:        m.ID,
		FaqID:     m.FaqID,
		ProductID: m.ProductID,
		CreatedAt: m.CreatedAt,
	}
}

// FromCategoryModel maps the persisted binding into a DTO.
func FromCategoryModel(m *models.FaqCategoryBinding) *CategoryBindingDTO {
	if m == nil {
		return nil
	}
	return &CategoryBindingDTO{
		ID:             m.ID,
		FaqID:          m.FaqID,
		CategoryID:     m.CategoryID,
		CategoryHandle: m.CategoryHandle,
		CreatedAt:      m.CreatedAt,
	}
}
