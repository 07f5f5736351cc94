package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	ListingStatusAvailable = "available"
	ListingStatusClaimed   = "claimed"
)

var (
	MessageSuccessCreateListing       = "listing created successfully"
	MessageSuccessDeleteListing       = "listing deleted successfully"
	MessageSuccessGetListings         = "listings retrieved successfully"
	MessageSuccessGetListingDetails   = "listing details retrieved successfully"
	MessageSuccessGetProviderListings = "provider listings retrieved successfully"
	MessageSuccessGetProviderStats    = "provider statistics retrieved successfully"

	MessageFailedCreateListing       = "failed to create listing"
	MessageFailedDeleteListing       = "failed to delete listing"
	MessageFailedGetListings         = "failed to retrieve listings"
	MessageFailedGetListingDetails   = "failed to retrieve listing details"
	MessageFailedGetProviderListings = "failed to retrieve provider listings"
	MessageFailedGetProviderStats    = "failed to retrieve provider statistics"

	ErrListingNotFound           = errors.New("listing not found")
	ErrUnauthorizedListingAccess = errors.New("listing belongs to another provider")
	ErrAvailableUntilInPast      = errors.New("available until must not be in the past")
	ErrInvalidAvailableUntil     = errors.New("invalid available until date or time")
)

type (
	CreateListingRequest struct {
		Title              string                `json:"title" form:"title" validate:"required"`
		Description        string                `json:"description" form:"description" validate:"required"`
		Quantity           string                `json:"quantity" form:"quantity" validate:"required"`
		Category           string                `json:"category" form:"category" validate:"required,oneof=bakery produce prepared_meals dairy other"`
		PickupLocation     string                `json:"pickup_location" form:"pickup_location" validate:"required"`
		PickupInstructions string                `json:"pickup_instructions" form:"pickup_instructions" validate:"omitempty"`
		AvailableDate      string                `json:"available_date" form:"available_date" validate:"required"`
		AvailableTime      string                `json:"available_time" form:"available_time" validate:"required"`
		Latitude           *float64              `json:"latitude" form:"latitude" validate:"omitempty"`
		Longitude          *float64              `json:"longitude" form:"longitude" validate:"omitempty"`
		Image              *multipart.FileHeader `json:"image" form:"image" validate:"omitempty"`
	}

	ListingResponse struct {
		ID                 string    `json:"id"`
		ProviderID         string    `json:"provider_id"`
		Title              string    `json:"title"`
		Description        string    `json:"description"`
		Quantity           string    `json:"quantity"`
		Category           string    `json:"category"`
		PickupLocation     string    `json:"pickup_location"`
		PickupInstructions string    `json:"pickup_instructions,omitempty"`
		AvailableUntil     time.Time `json:"available_until"`
		Status             string    `json:"status"`
		ImageURL           string    `json:"image_url,omitempty"`
		Latitude           *float64  `json:"latitude,omitempty"`
		Longitude          *float64  `json:"longitude,omitempty"`
		IsExpired          bool      `json:"is_expired"`
		CreatedAt          time.Time `json:"created_at"`
	}

	ProviderStatsResponse struct {
		TotalListings   int64 `json:"total_listings"`
		ActiveListings  int64 `json:"active_listings"`
		ClaimedListings int64 `json:"claimed_listings"`
		ClaimsReceived  int64 `json:"claims_received"`
	}
)
