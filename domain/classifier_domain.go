package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessClassifyImage = "image classified successfully"
	MessageFailedClassifyImage  = "failed to classify image"

	ErrClassifierUnavailable = errors.New("classifier model service unavailable")
	ErrNoPredictions         = errors.New("no predictions returned from model")
)

type (
	ClassifyImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	// ClassificationResponse pre-fills the create-listing form. Category is
	// already clamped to the listing category selector set.
	ClassificationResponse struct {
		Category    string  `json:"category"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Confidence  float64 `json:"confidence"`
	}
)
