package claim

import (
	"context"

	"gorm.io/gorm"

	"reharvest-backend/entities"
)

type (
	ClaimRepository interface {
		CreateClaim(ctx context.Context, claim *entities.Claim) error
		GetConsumerStats(ctx context.Context, consumerID string) (map[string]int64, error)
	}

	claimRepository struct {
		db *gorm.DB
	}
)

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) CreateClaim(ctx context.Context, claim *entities.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimRepository) GetConsumerStats(ctx context.Context, consumerID string) (map[string]int64, error) {
	var totalClaims, pendingClaims int64

	if err := r.db.WithContext(ctx).Model(&entities.Claim{}).
		Where("consumer_id = ?", consumerID).
		Count(&totalClaims).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.Claim{}).
		Where("consumer_id = ? AND status = ?", consumerID, "pending").
		Count(&pendingClaims).Error; err != nil {
		return nil, err
	}

	stats := map[string]int64{
		"total_claims":   totalClaims,
		"pending_claims": pendingClaims,
	}

	return stats, nil
}
