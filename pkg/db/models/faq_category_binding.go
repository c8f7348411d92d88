package models

import "time"

// FaqCategoryBinding attaches a FAQ to a storefront category. The category
// handle is kept alongside the id for public storefront lookups by slug;
// the platform does not expose one for every category, so it is nullable.
type FaqCategoryBinding struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FaqID          uint64    `gorm:"column:faq_id;not null;index:faq_category_bindings_faq_id_idx;uniqueIndex:faq_category_bindings_faq_category_key"`
	StoreID        uint64    `gorm:"column:store_id;not null;uniqueIndex:faq_category_bindings_store_category_key"`
	CategoryID     uint64    `gorm:"column:category_id;not null;uniqueIndex:faq_category_bindings_faq_category_key;uniqueIndex:faq_category_bindings_store_category_key"`
	CategoryHandle *string   `gorm:"column:category_handle"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
