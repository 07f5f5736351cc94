package claim

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reharvest-backend/domain"
	"reharvest-backend/entities"
	"reharvest-backend/internal/cache"
	"reharvest-backend/pkg/listing"
	"reharvest-backend/pkg/user"
)

// maxDecrementAttempts bounds the optimistic retry loop on the listing
// quantity. Each retry re-reads the stored quantity before recomputing.
const maxDecrementAttempts = 3

type (
	ClaimService interface {
		SubmitClaim(ctx context.Context, req domain.SubmitClaimRequest, consumerID string) (*domain.SubmitClaimResponse, error)
		GetConsumerStats(ctx context.Context, consumerID string) (*domain.ConsumerStatsResponse, error)
	}

	claimService struct {
		claimRepository   ClaimRepository
		listingRepository listing.ListingRepository
		userRepository    user.UserRepository
		listingCache      cache.ListingCache
		notifier          PickupNotifier
	}
)

func NewClaimService(
	claimRepository ClaimRepository,
	listingRepository listing.ListingRepository,
	userRepository user.UserRepository,
	listingCache cache.ListingCache,
	notifier PickupNotifier,
) ClaimService {
	return &claimService{
		claimRepository:   claimRepository,
		listingRepository: listingRepository,
		userRepository:    userRepository,
		listingCache:      listingCache,
		notifier:          notifier,
	}
}

// SubmitClaim records a claim for one unit of a listing and reconciles the
// listing's remaining quantity. The claim insert is the only duplicate
// check: the (listing, consumer) unique index rejects a second claim by
// the same consumer. The quantity decrement is a compare-and-swap update
// conditioned on the last observed quantity text and retried on conflict,
// so concurrent claimants cannot overwrite each other's decrements. The
// two writes are deliberately not wrapped in one transaction: when the
// listing update fails the claim row stays, and the caller is told via
// ErrListingUpdateFailed.
func (s *claimService) SubmitClaim(ctx context.Context, req domain.SubmitClaimRequest, consumerID string) (*domain.SubmitClaimResponse, error) {
	listingUUID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	consumerUUID, err := uuid.Parse(consumerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	newClaim := &entities.Claim{
		ID:         uuid.New(),
		ListingID:  listingUUID,
		ConsumerID: consumerUUID,
		Status:     domain.ClaimStatusPending,
	}

	if err := s.claimRepository.CreateClaim(ctx, newClaim); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateClaim
		}
		return nil, domain.ErrClaimInsertFailed
	}

	quantityText := req.CurrentQuantity
	updatedQuantity := ""
	updatedStatus := domain.ListingStatusAvailable

	for attempt := 0; attempt < maxDecrementAttempts; attempt++ {
		current := parseQuantity(quantityText)
		newQuantity := current - 1
		if newQuantity < 0 {
			newQuantity = 0
		}
		newText := strconv.Itoa(newQuantity)
		markClaimed := newQuantity == 0

		rows, err := s.listingRepository.DecrementQuantity(ctx, req.ListingID, quantityText, newText, markClaimed)
		if err != nil {
			return nil, domain.ErrListingUpdateFailed
		}
		if rows > 0 {
			updatedQuantity = newText
			if markClaimed {
				updatedStatus = domain.ListingStatusClaimed
			}
			break
		}

		// Another claimant changed the quantity since it was observed.
		fresh, err := s.listingRepository.GetListingByID(ctx, req.ListingID)
		if err != nil {
			return nil, domain.ErrListingUpdateFailed
		}
		quantityText = fresh.Quantity
	}

	if updatedQuantity == "" {
		return nil, domain.ErrListingUpdateFailed
	}

	s.listingCache.InvalidateBrowse(ctx)
	s.sendPickupDetails(ctx, req.ListingID, consumerID)

	return &domain.SubmitClaimResponse{
		ClaimID:       newClaim.ID.String(),
		ListingID:     req.ListingID,
		ClaimStatus:   newClaim.Status,
		Quantity:      updatedQuantity,
		ListingStatus: updatedStatus,
		ClaimedAt:     newClaim.CreatedAt,
	}, nil
}

func (s *claimService) GetConsumerStats(ctx context.Context, consumerID string) (*domain.ConsumerStatsResponse, error) {
	stats, err := s.claimRepository.GetConsumerStats(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	return &domain.ConsumerStatsResponse{
		TotalClaims:   stats["total_claims"],
		PendingClaims: stats["pending_claims"],
	}, nil
}

func (s *claimService) sendPickupDetails(ctx context.Context, listingID, consumerID string) {
	claimed, err := s.listingRepository.GetListingByID(ctx, listingID)
	if err != nil {
		log.Printf("pickup mail skipped, listing lookup failed: %v", err)
		return
	}
	consumer, err := s.userRepository.GetUserByID(ctx, consumerID)
	if err != nil {
		log.Printf("pickup mail skipped, consumer lookup failed: %v", err)
		return
	}
	if err := s.notifier.SendPickupDetails(consumer.Email, claimed); err != nil {
		log.Printf("pickup mail failed: %v", err)
	}
}

// parseQuantity extracts the leading integer from the stored quantity
// text, e.g. "10 items" parses as 10. Missing or unparseable values fall
// open to 1 so legacy single-unit listings stay claimable.
func parseQuantity(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 1
	}
	return n
}
