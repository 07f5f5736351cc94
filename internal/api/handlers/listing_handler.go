package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reharvest-backend/domain"
	"reharvest-backend/internal/api/presenters"
	"reharvest-backend/pkg/listing"
)

type (
	ListingHandler interface {
		CreateListing(c *fiber.Ctx) error
		BrowseListings(c *fiber.Ctx) error
		GetListingDetails(c *fiber.Ctx) error
		GetProviderListings(c *fiber.Ctx) error
		DeleteListing(c *fiber.Ctx) error
		GetProviderStats(c *fiber.Ctx) error
	}

	listingHandler struct {
		listingService listing.ListingService
		validator      *validator.Validate
	}
)

func NewListingHandler(listingService listing.ListingService, validator *validator.Validate) ListingHandler {
	return &listingHandler{
		listingService: listingService,
		validator:      validator,
	}
}

func (h *listingHandler) CreateListing(c *fiber.Ctx) error {
	providerID := c.Locals("user_id").(string)
	req := new(domain.CreateListingRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Image is optional; ignore the error when no file was attached.
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	res, err := h.listingService.CreateListing(c.Context(), *req, providerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateListing)
}

func (h *listingHandler) BrowseListings(c *fiber.Ctx) error {
	listings, err := h.listingService.BrowseListings(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, listings, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *listingHandler) GetListingDetails(c *fiber.Ctx) error {
	listingID := c.Params("id")

	res, err := h.listingService.GetListingByID(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetListingDetails, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetListingDetails, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetListingDetails)
}

func (h *listingHandler) GetProviderListings(c *fiber.Ctx) error {
	providerID := c.Locals("user_id").(string)

	listings, err := h.listingService.GetProviderListings(c.Context(), providerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProviderListings, err)
	}

	return presenters.SuccessResponse(c, listings, fiber.StatusOK, domain.MessageSuccessGetProviderListings)
}

func (h *listingHandler) DeleteListing(c *fiber.Ctx) error {
	providerID := c.Locals("user_id").(string)
	listingID := c.Params("id")

	if err := h.listingService.DeleteListing(c.Context(), listingID, providerID); err != nil {
		if errors.Is(err, domain.ErrUnauthorizedListingAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteListing, err)
		}
		if errors.Is(err, domain.ErrListingNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteListing, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteListing, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteListing)
}

func (h *listingHandler) GetProviderStats(c *fiber.Ctx) error {
	providerID := c.Locals("user_id").(string)

	stats, err := h.listingService.GetProviderStats(c.Context(), providerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProviderStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetProviderStats)
}
