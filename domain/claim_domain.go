package domain

import (
	"errors"
	"time"
)

const ClaimStatusPending = "pending"

var (
	MessageSuccessSubmitClaim      = "food claimed! check your email for pickup details"
	MessageSuccessGetConsumerStats = "consumer statistics retrieved successfully"

	MessageFailedSubmitClaim      = "failed to claim listing"
	MessageDuplicateClaim         = "you've already claimed this item"
	MessageFailedGetConsumerStats = "failed to retrieve consumer statistics"

	// ErrDuplicateClaim means the storage layer rejected the claim insert
	// on the (listing, consumer) unique index.
	ErrDuplicateClaim = errors.New("listing already claimed by this consumer")

	// ErrClaimInsertFailed covers every other claim insert failure.
	ErrClaimInsertFailed = errors.New("failed to record claim")

	// ErrListingUpdateFailed means the claim row was written but the
	// listing decrement did not go through. The claim is kept.
	ErrListingUpdateFailed = errors.New("failed to update listing after claim")
)

type (
	SubmitClaimRequest struct {
		ListingID string `json:"listing_id" validate:"required,uuid"`
		// Quantity snapshot from the listing the consumer was shown.
		// Seeds the first decrement attempt only; conflicts re-read.
		CurrentQuantity string `json:"current_quantity" validate:"omitempty"`
	}

	SubmitClaimResponse struct {
		ClaimID       string    `json:"claim_id"`
		ListingID     string    `json:"listing_id"`
		ClaimStatus   string    `json:"claim_status"`
		Quantity      string    `json:"quantity"`
		ListingStatus string    `json:"listing_status"`
		ClaimedAt     time.Time `json:"claimed_at"`
	}

	ConsumerStatsResponse struct {
		TotalClaims   int64 `json:"total_claims"`
		PendingClaims int64 `json:"pending_claims"`
	}
)
