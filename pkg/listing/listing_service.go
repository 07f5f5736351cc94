package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reharvest-backend/domain"
	"reharvest-backend/entities"
	"reharvest-backend/internal/cache"
	"reharvest-backend/internal/utils/storage"
)

type (
	ListingService interface {
		CreateListing(ctx context.Context, req domain.CreateListingRequest, providerID string) (*domain.ListingResponse, error)
		BrowseListings(ctx context.Context) ([]*domain.ListingResponse, error)
		GetListingByID(ctx context.Context, id string) (*domain.ListingResponse, error)
		GetProviderListings(ctx context.Context, providerID string) ([]*domain.ListingResponse, error)
		DeleteListing(ctx context.Context, id string, providerID string) error
		GetProviderStats(ctx context.Context, providerID string) (*domain.ProviderStatsResponse, error)
	}

	listingService struct {
		listingRepository ListingRepository
		listingCache      cache.ListingCache
		s3                storage.AwsS3
	}
)

func NewListingService(listingRepository ListingRepository, listingCache cache.ListingCache, s3 storage.AwsS3) ListingService {
	return &listingService{
		listingRepository: listingRepository,
		listingCache:      listingCache,
		s3:                s3,
	}
}

func (s *listingService) CreateListing(ctx context.Context, req domain.CreateListingRequest, providerID string) (*domain.ListingResponse, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	availableUntil, err := resolveAvailableUntil(req.AvailableDate, req.AvailableTime)
	if err != nil {
		return nil, err
	}

	listingID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("listing-%s", listingID.String()),
			req.Image,
			"listings",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	listing := &entities.FoodListing{
		ID:                 listingID,
		ProviderID:         providerUUID,
		Title:              req.Title,
		Description:        req.Description,
		Quantity:           req.Quantity,
		Category:           req.Category,
		PickupLocation:     req.PickupLocation,
		PickupInstructions: req.PickupInstructions,
		AvailableUntil:     availableUntil,
		Status:             domain.ListingStatusAvailable,
		ImageURL:           imageURL,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
	}

	if err := s.listingRepository.CreateListing(ctx, listing); err != nil {
		return nil, err
	}

	s.listingCache.InvalidateBrowse(ctx)

	return toListingResponse(listing, time.Now()), nil
}

func (s *listingService) BrowseListings(ctx context.Context) ([]*domain.ListingResponse, error) {
	now := time.Now()

	if cached, ok := s.listingCache.GetBrowse(ctx); ok {
		// The snapshot may predate a deadline, so expired entries are
		// dropped here rather than waiting for the TTL.
		fresh := make([]*domain.ListingResponse, 0, len(cached))
		for _, listing := range cached {
			if listing.AvailableUntil.Before(now) {
				continue
			}
			fresh = append(fresh, listing)
		}
		return fresh, nil
	}

	listings, err := s.listingRepository.GetAvailableListings(ctx, now)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		result = append(result, toListingResponse(listing, now))
	}

	s.listingCache.SetBrowse(ctx, result)

	return result, nil
}

func (s *listingService) GetListingByID(ctx context.Context, id string) (*domain.ListingResponse, error) {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	return toListingResponse(listing, time.Now()), nil
}

func (s *listingService) GetProviderListings(ctx context.Context, providerID string) ([]*domain.ListingResponse, error) {
	listings, err := s.listingRepository.GetProviderListings(ctx, providerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*domain.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		result = append(result, toListingResponse(listing, now))
	}

	return result, nil
}

func (s *listingService) DeleteListing(ctx context.Context, id string, providerID string) error {
	listing, err := s.listingRepository.GetListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrListingNotFound
		}
		return err
	}

	if listing.ProviderID.String() != providerID {
		return domain.ErrUnauthorizedListingAccess
	}

	if err := s.listingRepository.DeleteListing(ctx, id); err != nil {
		return err
	}

	s.listingCache.InvalidateBrowse(ctx)

	return nil
}

func (s *listingService) GetProviderStats(ctx context.Context, providerID string) (*domain.ProviderStatsResponse, error) {
	stats, err := s.listingRepository.GetProviderStats(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return &domain.ProviderStatsResponse{
		TotalListings:   stats["total_listings"],
		ActiveListings:  stats["active_listings"],
		ClaimedListings: stats["claimed_listings"],
		ClaimsReceived:  stats["claims_received"],
	}, nil
}

// resolveAvailableUntil combines the independently picked date and
// time-of-day into the listing deadline. The date may not be before today.
func resolveAvailableUntil(date, timeOfDay string) (time.Time, error) {
	availableUntil, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
	if err != nil {
		return time.Time{}, domain.ErrInvalidAvailableUntil
	}

	year, month, day := time.Now().Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if availableUntil.Before(today) {
		return time.Time{}, domain.ErrAvailableUntilInPast
	}

	return availableUntil, nil
}

func toListingResponse(listing *entities.FoodListing, now time.Time) *domain.ListingResponse {
	return &domain.ListingResponse{
		ID:                 listing.ID.String(),
		ProviderID:         listing.ProviderID.String(),
		Title:              listing.Title,
		Description:        listing.Description,
		Quantity:           listing.Quantity,
		Category:           listing.Category,
		PickupLocation:     listing.PickupLocation,
		PickupInstructions: listing.PickupInstructions,
		AvailableUntil:     listing.AvailableUntil,
		Status:             listing.Status,
		ImageURL:           listing.ImageURL,
		Latitude:           listing.Latitude,
		Longitude:          listing.Longitude,
		IsExpired:          listing.AvailableUntil.Before(now),
		CreatedAt:          listing.CreatedAt,
	}
}
