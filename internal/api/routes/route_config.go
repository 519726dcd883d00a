package routes

import (
	"Smart-Shelf-Backend/internal/api/handlers"
	"Smart-Shelf-Backend/internal/middleware"
	"Smart-Shelf-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	AuthHandler     handlers.AuthHandler
	ShelfHandler    handlers.ShelfHandler
	RecipeHandler   handlers.RecipeHandler
	SettingsHandler handlers.SettingsHandler
	DigestHandler   handlers.DigestHandler
	DataHandler     handlers.DataHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.ShelfItems()
	c.Recipes()
	c.Settings()
	c.Digest()
	c.Data()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	auth.Post("/token", c.AuthHandler.IssueToken)
}

func (c *Config) ShelfItems() {
	shelfItems := c.App.Group("/api/v1/shelf-items", c.Middleware.AuthMiddleware(c.JWTService))
	shelfItems.Get("/dashboard", c.ShelfHandler.GetDashboard)
	shelfItems.Get("/hints", c.ShelfHandler.GetAddItemHints)

	// Basic CRUD operations
	shelfItems.Post("", c.ShelfHandler.AddShelfItem)
	shelfItems.Get("", c.ShelfHandler.GetShelfItems)
	shelfItems.Get("/:id", c.ShelfHandler.GetShelfItemDetails)
	shelfItems.Put("/:id", c.ShelfHandler.UpdateShelfItem)
	shelfItems.Delete("/:id", c.ShelfHandler.DeleteShelfItem)

	// Lifecycle
	shelfItems.Post("/:id/consume", c.ShelfHandler.ConsumeShelfItem)
	shelfItems.Post("/:id/discard", c.ShelfHandler.DiscardShelfItem)
	shelfItems.Post("/:id/freeze", c.ShelfHandler.FreezeShelfItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/suggest", c.RecipeHandler.SuggestRecipe)
	recipes.Get("/shelf-items/:id", c.RecipeHandler.GetShelfItemRecipe)
	recipes.Post("/shelf-items/:id/cook", c.RecipeHandler.CookShelfItem)
}

func (c *Config) Settings() {
	settings := c.App.Group("/api/v1/settings", c.Middleware.AuthMiddleware(c.JWTService))
	settings.Get("", c.SettingsHandler.GetSettings)
	settings.Patch("", c.SettingsHandler.UpdateSettings)
	settings.Post("/complete-setup", c.SettingsHandler.CompleteSetup)
}

func (c *Config) Digest() {
	digest := c.App.Group("/api/v1/digest", c.Middleware.AuthMiddleware(c.JWTService))
	digest.Get("", c.DigestHandler.GetDigest)
	digest.Post("/send", c.DigestHandler.SendDigest)
}

func (c *Config) Data() {
	data := c.App.Group("/api/v1/data", c.Middleware.AuthMiddleware(c.JWTService))
	data.Get("/export", c.DataHandler.ExportData)
	data.Post("/export/s3", c.DataHandler.ExportDataToS3)
	data.Post("/reset", c.DataHandler.ResetData)
}
