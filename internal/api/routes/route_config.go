package routes

import (
	"github.com/gofiber/fiber/v2"

	"reharvest-backend/domain"
	"reharvest-backend/internal/api/handlers"
	"reharvest-backend/internal/middleware"
	"reharvest-backend/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	ListingHandler    handlers.ListingHandler
	ClaimHandler      handlers.ClaimHandler
	ClassifierHandler handlers.ClassifierHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Listings()
	c.Claims()
	c.Classifier()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Listings() {
	listings := c.App.Group("/api/v1/listings", c.Middleware.AuthMiddleware(c.JWTService))

	// Consumer browse
	listings.Get("", c.ListingHandler.BrowseListings)
	listings.Get("/mine", c.Middleware.OnlyRole(domain.RoleProvider), c.ListingHandler.GetProviderListings)
	listings.Get("/stats", c.Middleware.OnlyRole(domain.RoleProvider), c.ListingHandler.GetProviderStats)
	listings.Get("/:id", c.ListingHandler.GetListingDetails)

	// Provider lifecycle
	listings.Post("", c.Middleware.OnlyRole(domain.RoleProvider), c.ListingHandler.CreateListing)
	listings.Delete("/:id", c.Middleware.OnlyRole(domain.RoleProvider), c.ListingHandler.DeleteListing)
}

func (c *Config) Claims() {
	claims := c.App.Group("/api/v1/claims", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.OnlyRole(domain.RoleConsumer))

	claims.Post("", c.ClaimHandler.SubmitClaim)
	claims.Get("/stats", c.ClaimHandler.GetConsumerStats)
}

func (c *Config) Classifier() {
	classify := c.App.Group("/api/v1/classify", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.OnlyRole(domain.RoleProvider))

	classify.Post("", c.ClassifierHandler.ClassifyImage)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
