package models

import (
	"time"

	"github.com/nexofaq/nexofaq-backend/pkg/types"
)

// Store represents an installed storefront tenant. StoreID is the
// platform-assigned merchant identifier every FAQ row is scoped by.
type Store struct {
	ID             uint64        `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID        uint64        `gorm:"column:store_id;not null;uniqueIndex:stores_store_id_key"`
	AccessToken    string        `gorm:"column:access_token;not null"`
	RefreshToken   *string       `gorm:"column:refresh_token"`
	TokenExpiresAt *time.Time    `gorm:"column:token_expires_at"`
	StoreName      *string       `gorm:"column:store_name"`
	StoreData      types.JSONMap `gorm:"column:store_data;type:jsonb"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
