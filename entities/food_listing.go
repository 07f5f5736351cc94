package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodListing struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ProviderID         uuid.UUID `json:"provider_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Quantity           string    `json:"quantity"` // text count, e.g. "10 items"; only the leading integer is load-bearing
	Category           string    `json:"category"` // bakery, produce, prepared_meals, dairy, other
	PickupLocation     string    `json:"pickup_location"`
	PickupInstructions string    `json:"pickup_instructions,omitempty"`
	AvailableUntil     time.Time `json:"available_until"`
	Status             string    `json:"status"` // available, claimed
	ImageURL           string    `json:"image_url,omitempty"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`

	Provider *User    `gorm:"foreignKey:ProviderID"`
	Claims   []*Claim `gorm:"foreignKey:ListingID"`
	Timestamp
}
