package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"reharvest-backend/domain"
	"reharvest-backend/internal/utils"
)

// foodCategories maps model class names to listing categories. The model
// vocabulary is broader than the listing category selector; meat and
// beverages clamp to "other" when suggested for a listing.
var foodCategories = map[string][]string{
	"bakery":         {"bagel", "bread", "pretzel", "croissant", "bun", "baguette", "muffin", "cupcake", "cake", "pastry", "doughnut", "cookie"},
	"produce":        {"apple", "banana", "orange", "strawberry", "grape", "pineapple", "watermelon", "lemon", "cucumber", "broccoli", "carrot", "cabbage", "cauliflower", "lettuce", "tomato", "potato", "onion", "pepper", "mushroom", "corn", "pumpkin", "zucchini"},
	"prepared_meals": {"pizza", "hamburger", "hotdog", "burrito", "taco", "sandwich", "sushi", "noodle", "pasta", "soup", "stew", "curry", "rice", "salad"},
	"dairy":          {"cheese", "milk", "yogurt", "ice cream", "butter"},
	"meat":           {"steak", "chicken", "turkey", "bacon", "sausage", "meat loaf"},
	"beverages":      {"coffee", "tea", "juice", "smoothie", "wine", "beer"},
}

// selectorCategories is the set the create-listing form exposes.
var selectorCategories = map[string]bool{
	"bakery":         true,
	"produce":        true,
	"prepared_meals": true,
	"dairy":          true,
	"other":          true,
}

type (
	ClassifierService interface {
		ClassifyImage(ctx context.Context, req domain.ClassifyImageRequest) (*domain.ClassificationResponse, error)
	}

	prediction struct {
		ClassName   string  `json:"class_name"`
		Probability float64 `json:"probability"`
	}

	classifyResult struct {
		Predictions []prediction `json:"predictions"`
	}

	classifierService struct {
		baseURL string
		client  *http.Client

		// The model service lazily loads its weights on first use.
		// loading/loaded make concurrent first callers wait for a single
		// warm-up instead of each triggering a reload.
		mu      sync.Mutex
		cond    *sync.Cond
		loading bool
		loaded  bool
	}
)

func NewClassifierService() ClassifierService {
	s := &classifierService{
		baseURL: utils.GetConfig("AI_MODEL_URL"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *classifierService) ClassifyImage(ctx context.Context, req domain.ClassifyImageRequest) (*domain.ClassificationResponse, error) {
	if err := s.ensureModelLoaded(ctx); err != nil {
		return nil, domain.ErrClassifierUnavailable
	}

	result, err := s.classify(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	if len(result.Predictions) == 0 {
		return nil, domain.ErrNoPredictions
	}

	top := result.Predictions[0]
	category := clampCategory(mapToFoodCategory(top.ClassName))

	return &domain.ClassificationResponse{
		Category:    category,
		Title:       generateTitle(top.ClassName),
		Description: generateDescription(result.Predictions),
		Confidence:  top.Probability,
	}, nil
}

// ensureModelLoaded performs the model warm-up once. Callers arriving
// while a warm-up is in flight block until it finishes; a failed warm-up
// is retried by the next caller.
func (s *classifierService) ensureModelLoaded(ctx context.Context) error {
	s.mu.Lock()
	for s.loading {
		s.cond.Wait()
	}
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	err := s.warmup(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.loaded = true
	}
	s.cond.Broadcast()
	s.mu.Unlock()

	return err
}

func (s *classifierService) warmup(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/warmup", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("warmup returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *classifierService) classify(ctx context.Context, image *multipart.FileHeader) (*classifyResult, error) {
	src, err := image.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", image.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/classify", &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, domain.ErrClassifierUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result classifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func mapToFoodCategory(className string) string {
	lower := strings.ToLower(className)
	for category, keywords := range foodCategories {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) || strings.Contains(keyword, lower) {
				return category
			}
		}
	}
	return "other"
}

func clampCategory(category string) string {
	if selectorCategories[category] {
		return category
	}
	return "other"
}

func generateTitle(className string) string {
	cleaned := strings.Split(className, ",")[0]
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	return "Fresh " + titleCase(cleaned)
}

func generateDescription(predictions []prediction) string {
	variations := strings.Split(predictions[0].ClassName, ",")
	for i := range variations {
		variations[i] = strings.TrimSpace(strings.ReplaceAll(variations[i], "_", " "))
	}

	var b strings.Builder
	b.WriteString(titleCase(variations[0]))
	b.WriteString(". ")

	if len(predictions) > 1 && predictions[1].Probability > 0.1 {
		second := strings.ToLower(strings.TrimSpace(strings.Split(predictions[1].ClassName, ",")[0]))
		second = strings.ReplaceAll(second, "_", " ")
		b.WriteString("May also contain ")
		b.WriteString(second)
		b.WriteString(". ")
	}

	b.WriteString("Fresh and ready for pickup.")
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
