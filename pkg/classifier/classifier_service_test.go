package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(baseURL string) *classifierService {
	s := &classifierService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func TestMapToFoodCategory(t *testing.T) {
	cases := []struct {
		className string
		want      string
	}{
		{"pepperoni pizza, pizza", "prepared_meals"},
		{"Granny Smith, apple", "produce"},
		{"French loaf, bread", "bakery"},
		{"cheddar cheese", "dairy"},
		{"sirloin steak", "meat"},
		{"espresso coffee", "beverages"},
		{"cardboard box", "other"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, mapToFoodCategory(tc.className), "class %q", tc.className)
	}
}

func TestClampCategoryToSelectorSet(t *testing.T) {
	// The model vocabulary is richer than the listing category selector;
	// extra categories fall back to "other".
	assert.Equal(t, "bakery", clampCategory("bakery"))
	assert.Equal(t, "prepared_meals", clampCategory("prepared_meals"))
	assert.Equal(t, "other", clampCategory("meat"))
	assert.Equal(t, "other", clampCategory("beverages"))
}

func TestGenerateTitle(t *testing.T) {
	assert.Equal(t, "Fresh Meat Loaf", generateTitle("meat_loaf, meatloaf"))
	assert.Equal(t, "Fresh Bagel", generateTitle("bagel"))
}

func TestGenerateDescription(t *testing.T) {
	preds := []prediction{
		{ClassName: "Granny Smith, apple", Probability: 0.91},
		{ClassName: "lemon", Probability: 0.21},
	}
	got := generateDescription(preds)
	assert.Contains(t, got, "Granny Smith")
	assert.Contains(t, got, "May also contain lemon")
	assert.Contains(t, got, "Fresh and ready for pickup.")
}

func TestGenerateDescriptionIgnoresWeakSecondPrediction(t *testing.T) {
	preds := []prediction{
		{ClassName: "bagel", Probability: 0.95},
		{ClassName: "pretzel", Probability: 0.03},
	}
	got := generateDescription(preds)
	assert.NotContains(t, got, "May also contain")
}

func TestEnsureModelLoadedWarmsUpOnce(t *testing.T) {
	var warmups int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/warmup" {
			atomic.AddInt32(&warmups, 1)
			time.Sleep(50 * time.Millisecond) // simulate model load latency
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := newTestService(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.ensureModelLoaded(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&warmups))
}

func TestEnsureModelLoadedRetriesAfterFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := newTestService(server.URL)

	require.Error(t, s.ensureModelLoaded(context.Background()))
	require.NoError(t, s.ensureModelLoaded(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
