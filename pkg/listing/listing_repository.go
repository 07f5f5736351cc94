package listing

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reharvest-backend/entities"
)

type (
	ListingRepository interface {
		CreateListing(ctx context.Context, listing *entities.FoodListing) error
		GetListingByID(ctx context.Context, id string) (*entities.FoodListing, error)
		GetAvailableListings(ctx context.Context, now time.Time) ([]*entities.FoodListing, error)
		GetProviderListings(ctx context.Context, providerID string) ([]*entities.FoodListing, error)
		DeleteListing(ctx context.Context, id string) error
		DecrementQuantity(ctx context.Context, id string, observedQuantity, newQuantity string, markClaimed bool) (int64, error)
		GetProviderStats(ctx context.Context, providerID string) (map[string]int64, error)
	}

	listingRepository struct {
		db *gorm.DB
	}
)

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) CreateListing(ctx context.Context, listing *entities.FoodListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetListingByID(ctx context.Context, id string) (*entities.FoodListing, error) {
	var listing entities.FoodListing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) GetAvailableListings(ctx context.Context, now time.Time) ([]*entities.FoodListing, error) {
	var listings []*entities.FoodListing

	if err := r.db.WithContext(ctx).
		Where("status = ? AND available_until >= ?", "available", now).
		Order("created_at desc").
		Find(&listings).Error; err != nil {
		return nil, err
	}

	return listings, nil
}

func (r *listingRepository) GetProviderListings(ctx context.Context, providerID string) ([]*entities.FoodListing, error) {
	var listings []*entities.FoodListing

	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&listings).Error; err != nil {
		return nil, err
	}

	return listings, nil
}

func (r *listingRepository) DeleteListing(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodListing{}).Error
}

// DecrementQuantity writes the new quantity text only when the stored
// quantity still matches what the caller observed. RowsAffected is 0 when
// another claimant got there first; callers re-read and retry.
func (r *listingRepository) DecrementQuantity(ctx context.Context, id string, observedQuantity, newQuantity string, markClaimed bool) (int64, error) {
	updates := map[string]interface{}{"quantity": newQuantity}
	if markClaimed {
		updates["status"] = "claimed"
	}

	tx := r.db.WithContext(ctx).Model(&entities.FoodListing{}).
		Where("id = ? AND quantity = ?", id, observedQuantity).
		Updates(updates)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *listingRepository) GetProviderStats(ctx context.Context, providerID string) (map[string]int64, error) {
	var totalListings, activeListings, claimedListings, claimsReceived int64

	if err := r.db.WithContext(ctx).Model(&entities.FoodListing{}).
		Where("provider_id = ?", providerID).
		Count(&totalListings).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.FoodListing{}).
		Where("provider_id = ? AND status = ?", providerID, "available").
		Count(&activeListings).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.FoodListing{}).
		Where("provider_id = ? AND status = ?", providerID, "claimed").
		Count(&claimedListings).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Table("claims").
		Joins("JOIN food_listings ON food_listings.id = claims.listing_id").
		Where("food_listings.provider_id = ?", providerID).
		Count(&claimsReceived).Error; err != nil {
		return nil, err
	}

	stats := map[string]int64{
		"total_listings":   totalListings,
		"active_listings":  activeListings,
		"claimed_listings": claimedListings,
		"claims_received":  claimsReceived,
	}

	return stats, nil
}
