package config

import (
	"Smart-Shelf-Backend/internal/api/handlers"
	"Smart-Shelf-Backend/internal/api/routes"
	"Smart-Shelf-Backend/internal/middleware"
	"Smart-Shelf-Backend/internal/utils"
	"Smart-Shelf-Backend/internal/utils/mailing"
	"Smart-Shelf-Backend/internal/utils/storage"
	"Smart-Shelf-Backend/pkg/auth"
	"Smart-Shelf-Backend/pkg/data"
	"Smart-Shelf-Backend/pkg/digest"
	"Smart-Shelf-Backend/pkg/jwt"
	"Smart-Shelf-Backend/pkg/recipe"
	"Smart-Shelf-Backend/pkg/settings"
	"Smart-Shelf-Backend/pkg/shelf"
	"Smart-Shelf-Backend/pkg/store"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewApp(ctx context.Context, st *store.Store) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ORIGINS"))
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
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		log.Warnf("export to S3 disabled: %v", err)
	}
	var mailer mailing.Mailer
	if mailConfig := mailing.LoadMailConfig(); mailConfig.Configured() {
		mailer = mailing.NewSMTPMailer(mailConfig)
	} else {
		log.Warn("SMTP is not configured, digest mails are disabled")
	}
	generator, err := recipe.NewGeneratorFromConfig(ctx)
	if err != nil {
		log.Warnf("recipe suggestions disabled: %v", err)
	}

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), jwt.DefaultTokenTTL)
	if !jwtService.Enabled() {
		log.Warn("JWT_SECRET is empty, API routes are unauthenticated")
	}
	authService := auth.NewAuthService(jwtService, utils.GetConfig("AUTH_PASSPHRASE_HASH"))
	shelfService := shelf.NewShelfService(st, time.Now)
	recipeService := recipe.NewRecipeService(recipe.NewGateway(generator), shelfService, time.Now)
	settingsService := settings.NewSettingsService(st)
	digestService := digest.NewDigestService(st, mailer, utils.GetConfig("DIGEST_RECIPIENT"), time.Now)
	dataService := data.NewDataService(st, s3, time.Now)

	// Handler
	authHandler := handlers.NewAuthHandler(authService, validator)
	shelfHandler := handlers.NewShelfHandler(shelfService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	settingsHandler := handlers.NewSettingsHandler(settingsService, validator)
	digestHandler := handlers.NewDigestHandler(digestService)
	dataHandler := handlers.NewDataHandler(dataService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		AuthHandler:     authHandler,
		ShelfHandler:    shelfHandler,
		RecipeHandler:   recipeHandler,
		SettingsHandler: settingsHandler,
		DigestHandler:   digestHandler,
		DataHandler:     dataHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
