package main

import (
	"log"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"casavista_backend/internal/controller"
	"casavista_backend/internal/livesync"
	"casavista_backend/internal/middleware"
	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
	"casavista_backend/pkg/config"
	"casavista_backend/pkg/cron"
	"casavista_backend/pkg/database"
	"casavista_backend/pkg/email"
	"casavista_backend/pkg/logger"
	"casavista_backend/pkg/seed"
	"casavista_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, hub *realtime.Hub) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Public Catalog Routes
	api.Get("/properties", controller.ListProperties)
	api.Get("/p/:slug", controller.GetPropertyBySlug)
	api.Post("/properties/:id/view", controller.RecordPropertyView)
	api.Post("/leads", controller.CreateLead)
	api.Get("/config", controller.GetWebConfig)

	// Realtime change stream
	api.Use("/realtime", realtime.UpgradeRequired)
	api.Get("/realtime/:table", realtime.Handler(hub))

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Admin Property Routes
	properties := protected.Group("/properties")
	properties.Get("/admin", controller.ListAdminProperties)
	properties.Post("/", controller.CreateProperty)
	properties.Put("/:id", controller.UpdateProperty)
	properties.Delete("/:id", controller.DeleteProperty)
	properties.Post("/:property_id/images", controller.UploadPropertyImage)
	properties.Delete("/images/:image_id", controller.DeletePropertyImage)

	// Admin Lead Routes
	leads := protected.Group("/leads")
	leads.Get("/", controller.GetLeads)
	leads.Put("/:id/status", controller.UpdateLeadStatus)
	leads.Put("/:id/read", controller.MarkLeadAsRead)

	// CMS config
	protected.Put("/config", controller.UpdateWebConfig)

	// Dashboard routes
	protected.Get("/dashboard/stats", controller.GetDashboardStats)

	// RPC function gateway
	protected.Post("/fn/:name", controller.InvokeFunction)
}

func main() {
	logger.Init(slog.LevelInfo)

	cfg := config.Load()

	if cfg.Email.APIKey != "" {
		if err := email.InitEmailService(cfg.Email.APIKey, cfg.Email.From); err != nil {
			log.Printf("Could not initialize email service: %v", err)
		}
	}

	if err := storage.InitStorage(); err != nil {
		log.Printf("Could not initialize storage: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.LoginHistory{},
		&model.PropertyType{},
		&model.Development{},
		&model.Property{},
		&model.PropertyImage{},
		&model.PropertyFeature{},
		&model.PropertyView{},
		&model.PropertyStats{},
		&model.Lead{},
		&model.WebConfig{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedPropertyTypes(database.GetDB())
	seed.SeedWebConfig(database.GetDB())

	hub := realtime.NewHub()
	store := livesync.NewGormStore(database.GetDB())
	controller.InitControllers(store, hub)

	cron.InitPropertyStatsCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New())

	setupRoutes(app, hub)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
