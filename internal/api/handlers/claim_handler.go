package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reharvest-backend/domain"
	"reharvest-backend/internal/api/presenters"
	"reharvest-backend/pkg/claim"
)

type (
	ClaimHandler interface {
		SubmitClaim(c *fiber.Ctx) error
		GetConsumerStats(c *fiber.Ctx) error
	}

	claimHandler struct {
		claimService claim.ClaimService
		validator    *validator.Validate
	}
)

func NewClaimHandler(claimService claim.ClaimService, validator *validator.Validate) ClaimHandler {
	return &claimHandler{
		claimService: claimService,
		validator:    validator,
	}
}

func (h *claimHandler) SubmitClaim(c *fiber.Ctx) error {
	consumerID := c.Locals("user_id").(string)
	req := new(domain.SubmitClaimRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitClaim, err)
	}

	res, err := h.claimService.SubmitClaim(c.Context(), *req, consumerID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateClaim) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageDuplicateClaim, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitClaim, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitClaim)
}

func (h *claimHandler) GetConsumerStats(c *fiber.Ctx) error {
	consumerID := c.Locals("user_id").(string)

	stats, err := h.claimService.GetConsumerStats(c.Context(), consumerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetConsumerStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetConsumerStats)
}
