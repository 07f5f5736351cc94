package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"reharvest-backend/internal/api/handlers"
	"reharvest-backend/internal/api/routes"
	"reharvest-backend/internal/cache"
	"reharvest-backend/internal/middleware"
	"reharvest-backend/internal/utils"
	"reharvest-backend/internal/utils/storage"
	"reharvest-backend/pkg/claim"
	"reharvest-backend/pkg/classifier"
	"reharvest-backend/pkg/jwt"
	"reharvest-backend/pkg/listing"
	"reharvest-backend/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	listingCache := cache.NewListingCache(cache.NewRedisClient())

	// Repository
	userRepository := user.NewUserRepository(db)
	listingRepository := listing.NewListingRepository(db)
	claimRepository := claim.NewClaimRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	listingService := listing.NewListingService(listingRepository, listingCache, s3)
	claimService := claim.NewClaimService(
		claimRepository,
		listingRepository,
		userRepository,
		listingCache,
		claim.NewMailNotifier(),
	)
	classifierService := classifier.NewClassifierService()

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	listingHandler := handlers.NewListingHandler(listingService, validator)
	claimHandler := handlers.NewClaimHandler(claimService, validator)
	classifierHandler := handlers.NewClassifierHandler(classifierService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		ListingHandler:    listingHandler,
		ClaimHandler:      claimHandler,
		ClassifierHandler: classifierHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
