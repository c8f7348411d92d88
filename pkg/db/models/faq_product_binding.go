package models

import "time"

// FaqProductBinding attaches a FAQ to a storefront product. StoreID is
// denormalized from the owning FAQ so the per-store exclusivity constraint
// can live on this table.
type FaqProductBinding struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FaqID     uint64    `gorm:"column:faq_id;not null;index:faq_product_bindings_faq_id_idx;uniqueIndex:faq_product_bindings_faq_product_key"`
	StoreID   uint64    `gorm:"column:store_id;not null;uniqueIndex:faq_product_bindings_store_product_key"`
	ProductID uint64    `gorm:"column:product_id;not null;uniqueIndex:faq_product_bindings_faq_product_key;uniqueIndex:faq_product_bindings_store_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
