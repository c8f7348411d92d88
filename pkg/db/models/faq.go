package models

import "time"

// Faq is the tenant-scoped FAQ aggregate root. At most one row per store may
// carry show_on_homepage, enforced by a partial unique index in the schema.
type Faq struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID        uint64    `gorm:"column:store_id;not null;index:faqs_store_id_idx"`
	Title          string    `gorm:"column:title;not null"`
	Active         bool      `gorm:"column:active;not null"`
	ShowOnHomepage bool      `gorm:"column:show_on_homepage;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Questions        []FaqQuestion        `gorm:"foreignKey:FaqID;constraint:OnDelete:CASCADE"`
	ProductBindings  []FaqProductBinding  `gorm:"foreignKey:FaqID;constraint:OnDelete:CASCADE"`
	CategoryBindings []FaqCategoryBinding `gorm:"foreignKey:FaqID;constraint:OnDelete:CASCADE"`
}
