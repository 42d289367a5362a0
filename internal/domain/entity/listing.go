package entity

import (
	"time"

	"github.com/google/uuid"
)

// Listing represents the vehicle listing a transaction was issued against.
// Only the fields the finance engine needs are modeled here; the listing
// wizard itself lives outside this service.
type Listing struct {
	ID        uuid.UUID
	DealerID  uuid.UUID
	Brand     string
	Model     string
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}
