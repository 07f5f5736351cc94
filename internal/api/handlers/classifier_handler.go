package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reharvest-backend/domain"
	"reharvest-backend/internal/api/presenters"
	"reharvest-backend/pkg/classifier"
)

type (
	ClassifierHandler interface {
		ClassifyImage(c *fiber.Ctx) error
	}

	classifierHandler struct {
		classifierService classifier.ClassifierService
		validator         *validator.Validate
	}
)

func NewClassifierHandler(classifierService classifier.ClassifierService, validator *validator.Validate) ClassifierHandler {
	return &classifierHandler{
		classifierService: classifierService,
		validator:         validator,
	}
}

func (h *classifierHandler) ClassifyImage(c *fiber.Ctx) error {
	req := new(domain.ClassifyImageRequest)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClassifyImage, err)
	}

	res, err := h.classifierService.ClassifyImage(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrClassifierUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedClassifyImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClassifyImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClassifyImage)
}
