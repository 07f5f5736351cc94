package entities

import (
	"github.com/google/uuid"
)

// Claim records a consumer reserving one unit of a listing. The composite
// unique index is the only guard against the same consumer claiming a
// listing twice; there is no pre-insert existence check.
type Claim struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ListingID  uuid.UUID `gorm:"uniqueIndex:idx_claims_listing_consumer" json:"listing_id"`
	ConsumerID uuid.UUID `gorm:"uniqueIndex:idx_claims_listing_consumer" json:"consumer_id"`
	Status     string    `json:"status"` // pending

	Listing  *FoodListing `gorm:"foreignKey:ListingID"`
	Consumer *User        `gorm:"foreignKey:ConsumerID"`
	Timestamp
}
