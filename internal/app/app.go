package app

import (
	"carmarket-backend/internal/auth"
	"carmarket-backend/internal/cars"
	"carmarket-backend/internal/catalog"
	"carmarket-backend/internal/config"
	"carmarket-backend/internal/database"
	"carmarket-backend/internal/health"
	"carmarket-backend/internal/inquiries"
	"carmarket-backend/internal/middleware"
	"carmarket-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration.
func CreateApp(cfg *config.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); the Redis client doubles for the health marker
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// Health module (no auth)
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             dbPinger(db),
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", healthHandlers.Live)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)
	app.Get("/health/reset", healthHandlers.Reset)

	// Auth (no auth middleware): register, login, me, logout
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// db may be nil when DATABASE_URL is unset (some tests); the data
	// modules only mount with a live handle.
	if db != nil {
		userService := &users.Service{DB: db}
		userHandlers := &users.Handlers{Service: userService}
		authGroup.Post("/register", userHandlers.Register)

		userGroup := app.Group("/api/users", middleware.RequireAuth())
		userGroup.Get("/me", userHandlers.Profile)
		userGroup.Put("/me", userHandlers.UpdateProfile)
		userGroup.Get("/me/seller", userHandlers.SellerProfile)

		// Catalog: public reads, admin writes (enforced in the service)
		catalogService := &catalog.Service{DB: db}
		catalogHandlers := &catalog.Handlers{Service: catalogService}
		brandGroup := app.Group("/api/cars/brands")
		brandGroup.Get("/", catalogHandlers.ListBrands)
		brandGroup.Get("/:id", catalogHandlers.GetBrand)
		brandGroup.Post("/", middleware.RequireAuth(), catalogHandlers.CreateBrand)
		brandGroup.Put("/:id", middleware.RequireAuth(), catalogHandlers.UpdateBrand)
		brandGroup.Delete("/:id", middleware.RequireAuth(), catalogHandlers.DeleteBrand)
		modelGroup := app.Group("/api/cars/models")
		modelGroup.Get("/", catalogHandlers.ListModels)
		modelGroup.Get("/:id", catalogHandlers.GetModel)
		modelGroup.Post("/", middleware.RequireAuth(), catalogHandlers.CreateModel)
		modelGroup.Put("/:id", middleware.RequireAuth(), catalogHandlers.UpdateModel)
		modelGroup.Delete("/:id", middleware.RequireAuth(), catalogHandlers.DeleteModel)

		// Cars: reads for anyone (scoped), writes behind auth. compare and
		// brands/models must register before the :id wildcard.
		carService := &cars.Service{DB: db, MediaBaseURL: cfg.MediaBaseURL}
		carHandlers := &cars.Handlers{Service: carService}
		carGroup := app.Group("/api/cars")
		carGroup.Get("/", carHandlers.List)
		carGroup.Get("/compare", carHandlers.Compare)
		carGroup.Get("/:id", carHandlers.Get)
		carGroup.Post("/", middleware.RequireAuth(), carHandlers.Create)
		carGroup.Put("/:id", middleware.RequireAuth(), carHandlers.Update)
		carGroup.Delete("/:id", middleware.RequireAuth(), carHandlers.Delete)
		carGroup.Post("/:id/approve", middleware.RequireAuth(), carHandlers.Approve)
		carGroup.Post("/:id/reject", middleware.RequireAuth(), carHandlers.Reject)
		carGroup.Post("/:id/images", middleware.RequireAuth(), carHandlers.AddImage)
		carGroup.Delete("/:id/images/:imageID", middleware.RequireAuth(), carHandlers.RemoveImage)

		// Inquiries (auth required throughout)
		inquiryService := &inquiries.Service{DB: db}
		inquiryHandlers := &inquiries.Handlers{Service: inquiryService}
		inquiryGroup := app.Group("/api/inquiries", middleware.RequireAuth())
		inquiryGroup.Get("/", inquiryHandlers.List)
		inquiryGroup.Post("/", inquiryHandlers.Create)
		inquiryGroup.Get("/:id", inquiryHandlers.Get)
		inquiryGroup.Patch("/:id", inquiryHandlers.Update)
		inquiryGroup.Delete("/:id", inquiryHandlers.Delete)
	}

	return app, nil
}

type gormPinger struct {
	db *gorm.DB
}

func (p *gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func dbPinger(db *gorm.DB) health.DBPinger {
	if db == nil {
		return nil
	}
	return &gormPinger{db: db}
}
