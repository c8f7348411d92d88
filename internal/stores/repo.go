package stores

import (
	"context"
	"fmt"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles installed-store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByStoreID loads a tenant by its platform store id.
func (r *Repository) FindByStoreID(ctx context.Context, storeID uint64) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Upsert inserts the tenant row or refreshes its credentials when the store
// reinstalls the app.
func (r *Repository) Upsert(ctx context.Context, dto UpsertStoreDTO) (*models.Store, error) {
	if dto.StoreID == 0 {
		return nil, fmt.Errorf("store id is required")
	}

	store := dto.ToModel()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "token_expires_at", "store_name", "store_data", "updated_at"}),
		}).
		Create(store).Error; err != nil {
		return nil, err
	}

	return r.FindByStoreID(ctx, dto.StoreID)
}
