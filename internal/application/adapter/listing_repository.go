package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

// ListingRepository resolves listing data owned by the marketplace side of
// the system. The finance engine only reads from it.
type ListingRepository interface {
	// Create creates a new listing in the database.
	Create(ctx context.Context, listing *entity.Listing) error

	// BrandsByListingIDs resolves the vehicle brand for each listing id.
	// Missing ids are simply absent from the map; callers degrade those to
	// a sentinel brand instead of failing the aggregation.
	BrandsByListingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}
