package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/domain/entity"
	"github.com/cepet-deal/backend/internal/integration/persistence/model"
)

// listingRepository implements the adapter.ListingRepository interface.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository instance.
func NewListingRepository(db *gorm.DB) adapter.ListingRepository {
	return &listingRepository{
		db: db,
	}
}

// Create creates a new listing in the database.
func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingModel := model.ListingFromEntity(listing)
	result := r.db.WithContext(ctx).Create(listingModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// BrandsByListingIDs resolves the brand of each listing id. Missing ids are
// simply absent from the map; brand enrichment treats them as Unknown.
func (r *listingRepository) BrandsByListingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	var rows []struct {
		ID    uuid.UUID
		Brand string
	}
	result := r.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Select("id, brand").
		Where("id IN ?", ids).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	brands := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		brands[row.ID] = row.Brand
	}
	return brands, nil
}
