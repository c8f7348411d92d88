package stores

import (
	"time"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	"github.com/nexofaq/nexofaq-backend/pkg/types"
)

// StoreDTO exposes safe tenant data in API responses. The access token never
// leaves the service layer.
type StoreDTO struct {
	StoreID        uint64        `json:"store_id"`
	TokenExpiresAt *time.Time    `json:"token_expires_at,omitempty"`
	StoreName      *string       `json:"store_name,omitempty"`
	StoreData      types.JSONMap `json:"store_data,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// CredentialsDTO carries the API credentials for outbound platform calls.
type CredentialsDTO struct {
	StoreID     uint64
	AccessToken string
}

// UpsertStoreDTO holds the install-time data written for a tenant.
type UpsertStoreDTO struct {
	StoreID        uint64
	AccessToken    string
	RefreshToken   *string
	TokenExpiresAt *time.Time
	StoreName      *string
	StoreData      types.JSONMap
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		StoreID:        m.StoreID,
		TokenExpiresAt: m.TokenExpiresAt,
		StoreName:      m.StoreName,
		StoreData:      m.StoreData,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the upsert DTO.
func (u UpsertStoreDTO) ToModel() *models.Store {
	return &models.Store{
		StoreID:        u.StoreID,
		AccessToken:    u.AccessToken,
		RefreshToken:   u.RefreshToken,
		TokenExpiresAt: u.TokenExpiresAt,
		StoreName:      u.StoreName,
		StoreData:      u.StoreData,
	}
}
