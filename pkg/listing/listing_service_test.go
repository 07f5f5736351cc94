package listing

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reharvest-backend/domain"
	"reharvest-backend/entities"
)

type fakeListingRepository struct {
	listings []*entities.FoodListing
}

func (f *fakeListingRepository) CreateListing(_ context.Context, listing *entities.FoodListing) error {
	listing.CreatedAt = time.Now()
	f.listings = append(f.listings, listing)
	return nil
}

func (f *fakeListingRepository) GetListingByID(_ context.Context, id string) (*entities.FoodListing, error) {
	for _, l := range f.listings {
		if l.ID.String() == id {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeListingRepository) GetAvailableListings(_ context.Context, now time.Time) ([]*entities.FoodListing, error) {
	var result []*entities.FoodListing
	for _, l := range f.listings {
		if l.Status == "available" && !l.AvailableUntil.Before(now) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeListingRepository) GetProviderListings(_ context.Context, providerID string) ([]*entities.FoodListing, error) {
	var result []*entities.FoodListing
	for _, l := range f.listings {
		if l.ProviderID.String() == providerID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeListingRepository) DeleteListing(_ context.Context, id string) error {
	for i, l := range f.listings {
		if l.ID.String() == id {
			f.listings = append(f.listings[:i], f.listings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeListingRepository) DecrementQuantity(_ context.Context, _ string, _, _ string, _ bool) (int64, error) {
	return 0, nil
}

func (f *fakeListingRepository) GetProviderStats(_ context.Context, providerID string) (map[string]int64, error) {
	stats := map[string]int64{}
	for _, l := range f.listings {
		if l.ProviderID.String() != providerID {
			continue
		}
		stats["total_listings"]++
		if l.Status == "available" {
			stats["active_listings"]++
		} else {
			stats["claimed_listings"]++
		}
	}
	return stats, nil
}

type fakeListingCache struct {
	browse      []*domain.ListingResponse
	invalidated int
}

func (f *fakeListingCache) GetBrowse(_ context.Context) ([]*domain.ListingResponse, bool) {
	if f.browse == nil {
		return nil, false
	}
	return f.browse, true
}

func (f *fakeListingCache) SetBrowse(_ context.Context, listings []*domain.ListingResponse) {
	f.browse = listings
}

func (f *fakeListingCache) InvalidateBrowse(_ context.Context) {
	f.browse = nil
	f.invalidated++
}

type fakeS3 struct{}

func (f *fakeS3) UploadFile(name string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + name + ".jpg", nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test/" + objectKey
}

func newListingFixture() (ListingService, *fakeListingRepository, *fakeListingCache) {
	repo := &fakeListingRepository{}
	cache := &fakeListingCache{}
	return NewListingService(repo, cache, &fakeS3{}), repo, cache
}

func validCreateRequest() domain.CreateListingRequest {
	tomorrow := time.Now().Add(24 * time.Hour)
	return domain.CreateListingRequest{
		Title:          "Surplus croissants",
		Description:    "Two dozen butter croissants from this morning",
		Quantity:       "24 items",
		Category:       "bakery",
		PickupLocation: "12 Baker St",
		AvailableDate:  tomorrow.Format("2006-01-02"),
		AvailableTime:  "18:00",
	}
}

func TestCreateListingStartsAvailable(t *testing.T) {
	service, repo, cache := newListingFixture()
	providerID := uuid.New().String()

	res, err := service.CreateListing(context.Background(), validCreateRequest(), providerID)
	require.NoError(t, err)

	assert.Equal(t, domain.ListingStatusAvailable, res.Status)
	assert.Equal(t, "24 items", res.Quantity)
	assert.False(t, res.IsExpired)
	require.Len(t, repo.listings, 1)
	assert.Equal(t, providerID, repo.listings[0].ProviderID.String())
	assert.Equal(t, 1, cache.invalidated)
}

func TestCreateListingRejectsPastDate(t *testing.T) {
	service, _, _ := newListingFixture()

	req := validCreateRequest()
	req.AvailableDate = time.Now().Add(-48 * time.Hour).Format("2006-01-02")

	_, err := service.CreateListing(context.Background(), req, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrAvailableUntilInPast)
}

func TestCreateListingRejectsMalformedDate(t *testing.T) {
	service, _, _ := newListingFixture()

	req := validCreateRequest()
	req.AvailableTime = "6pm"

	_, err := service.CreateListing(context.Background(), req, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrInvalidAvailableUntil)
}

func TestBrowseListingsExcludesClaimedAndExpired(t *testing.T) {
	service, repo, _ := newListingFixture()
	now := time.Now()

	repo.listings = []*entities.FoodListing{
		{ID: uuid.New(), ProviderID: uuid.New(), Title: "fresh", Status: "available", AvailableUntil: now.Add(time.Hour)},
		{ID: uuid.New(), ProviderID: uuid.New(), Title: "gone", Status: "claimed", AvailableUntil: now.Add(time.Hour)},
		{ID: uuid.New(), ProviderID: uuid.New(), Title: "expired", Status: "available", AvailableUntil: now.Add(-time.Hour)},
	}

	result, err := service.BrowseListings(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "fresh", result[0].Title)
	assert.False(t, result[0].IsExpired)
}

func TestBrowseListingsIdempotentWithoutWrites(t *testing.T) {
	service, repo, _ := newListingFixture()

	repo.listings = []*entities.FoodListing{
		{ID: uuid.New(), ProviderID: uuid.New(), Title: "a", Status: "available", AvailableUntil: time.Now().Add(time.Hour)},
		{ID: uuid.New(), ProviderID: uuid.New(), Title: "b", Status: "available", AvailableUntil: time.Now().Add(2 * time.Hour)},
	}

	first, err := service.BrowseListings(context.Background())
	require.NoError(t, err)
	second, err := service.BrowseListings(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestBrowseListingsDropsExpiredOnCacheHit(t *testing.T) {
	service, _, cache := newListingFixture()

	// A cached snapshot whose first deadline has since passed.
	expired := uuid.New().String()
	still := uuid.New().String()
	cache.browse = []*domain.ListingResponse{
		{ID: expired, Status: "available", AvailableUntil: time.Now().Add(-time.Minute)},
		{ID: still, Status: "available", AvailableUntil: time.Now().Add(time.Hour)},
	}

	result, err := service.BrowseListings(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, still, result[0].ID)
	assert.False(t, result[0].IsExpired)
}

func TestDeleteListingOwnerOnly(t *testing.T) {
	service, repo, cache := newListingFixture()
	owner := uuid.New()
	listing := &entities.FoodListing{
		ID:             uuid.New(),
		ProviderID:     owner,
		Status:         "available",
		AvailableUntil: time.Now().Add(time.Hour),
	}
	repo.listings = []*entities.FoodListing{listing}

	err := service.DeleteListing(context.Background(), listing.ID.String(), uuid.New().String())
	require.ErrorIs(t, err, domain.ErrUnauthorizedListingAccess)
	assert.Len(t, repo.listings, 1)

	err = service.DeleteListing(context.Background(), listing.ID.String(), owner.String())
	require.NoError(t, err)
	assert.Empty(t, repo.listings)
	assert.Equal(t, 1, cache.invalidated)
}

func TestDeleteListingNotFound(t *testing.T) {
	service, _, _ := newListingFixture()

	err := service.DeleteListing(context.Background(), uuid.New().String(), uuid.New().String())
	require.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestGetProviderStats(t *testing.T) {
	service, repo, _ := newListingFixture()
	provider := uuid.New()

	repo.listings = []*entities.FoodListing{
		{ID: uuid.New(), ProviderID: provider, Status: "available", AvailableUntil: time.Now().Add(time.Hour)},
		{ID: uuid.New(), ProviderID: provider, Status: "claimed", AvailableUntil: time.Now().Add(time.Hour)},
		{ID: uuid.New(), ProviderID: uuid.New(), Status: "available", AvailableUntil: time.Now().Add(time.Hour)},
	}

	stats, err := service.GetProviderStats(context.Background(), provider.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalListings)
	assert.Equal(t, int64(1), stats.ActiveListings)
	assert.Equal(t, int64(1), stats.ClaimedListings)
}
