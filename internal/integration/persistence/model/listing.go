package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/cepet-deal/backend/internal/domain/entity"
)

// ListingModel represents the listings table in the database.
type ListingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Brand     string    `gorm:"type:varchar(60);not null;index"`
	Model     string    `gorm:"type:varchar(60);not null"`
	Year      int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the ListingModel.
func (ListingModel) TableName() string {
	return "listings"
}

// ToEntity converts a ListingModel to a domain Listing entity.
func (m *ListingModel) ToEntity() *entity.Listing {
	return &entity.Listing{
		ID:        m.ID,
		DealerID:  m.DealerID,
		Brand:     m.Brand,
		Model:     m.Model,
		Year:      m.Year,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ListingFromEntity converts a domain Listing entity to a ListingModel.
func ListingFromEntity(listing *entity.Listing) *ListingModel {
	return &ListingModel{
		ID:        listing.ID,
		DealerID:  listing.DealerID,
		Brand:     listing.Brand,
		Model:     listing.Model,
		Year:      listing.Year,
		CreatedAt: listing.CreatedAt,
		UpdatedAt: listing.UpdatedAt,
	}
}
