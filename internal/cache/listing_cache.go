package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"reharvest-backend/domain"
	"reharvest-backend/internal/utils"
)

const (
	browseKey = "listings:browse"
	browseTTL = 30 * time.Second
)

// NewRedisClient connects to Redis using the loaded configuration. A nil
// client is returned when the server is unreachable; callers degrade to
// querying the database directly.
func NewRedisClient() *redis.Client {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

type (
	// ListingCache is a read-through cache for the consumer browse query.
	// Every listing mutation invalidates it; reads after a local write
	// therefore always hit the database.
	ListingCache interface {
		GetBrowse(ctx context.Context) ([]*domain.ListingResponse, bool)
		SetBrowse(ctx context.Context, listings []*domain.ListingResponse)
		InvalidateBrowse(ctx context.Context)
	}

	listingCache struct {
		client *redis.Client
	}
)

func NewListingCache(client *redis.Client) ListingCache {
	return &listingCache{client: client}
}

func (c *listingCache) GetBrowse(ctx context.Context) ([]*domain.ListingResponse, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, browseKey).Bytes()
	if err != nil {
		return nil, false
	}
	var listings []*domain.ListingResponse
	if err := json.Unmarshal(payload, &listings); err != nil {
		return nil, false
	}
	return listings, true
}

func (c *listingCache) SetBrowse(ctx context.Context, listings []*domain.ListingResponse) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(listings)
	if err != nil {
		return
	}
	c.client.Set(ctx, browseKey, payload, browseTTL)
}

func (c *listingCache) InvalidateBrowse(ctx context.Context) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, browseKey)
}
