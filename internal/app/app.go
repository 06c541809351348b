package app

import (
	"folio-backend/internal/assets"
	"folio-backend/internal/catalog"
	"folio-backend/internal/config"
	"folio-backend/internal/database"
	"folio-backend/internal/health"
	"folio-backend/internal/ledger"
	"folio-backend/internal/middleware"
	"folio-backend/internal/portfolios"
	"folio-backend/internal/trades"
	"folio-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned DB and Redis client may be nil when the
// corresponding URL is not configured (e.g. handler tests).
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(cfg.AllowedOrigins))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	var pinger health.DBPinger
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			pinger = sqlDB
		}
	}
	app.Get("/health", health.Handler(pinger, rdb))

	if db != nil {
		registerRoutes(app, cfg, db, rdb)
	}

	return app, db, rdb, nil
}

func registerRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	// Users (signup/login public, the rest behind auth)
	userService := &users.Service{DB: db, JWTSecret: cfg.JWTSecret, JWTExpiry: cfg.JWTExpiry}
	userHandlers := &users.Handlers{Service: userService}
	userGroup := app.Group("/api/v1/users")
	userGroup.Post("/signup", userHandlers.Signup)
	userGroup.Post("/login", userHandlers.Login)
	userGroup.Patch("/:id", requireAuth, userHandlers.Update)
	userGroup.Delete("/:id", requireAuth, userHandlers.Delete)

	// Portfolios
	portfolioService := &portfolios.Service{DB: db}
	portfolioHandlers := &portfolios.Handlers{Service: portfolioService}
	portfolioGroup := app.Group("/api/v1/portfolios", requireAuth)
	portfolioGroup.Post("/", portfolioHandlers.Create)
	portfolioGroup.Get("/", portfolioHandlers.List)
	portfolioGroup.Patch("/:id", portfolioHandlers.Rename)
	portfolioGroup.Delete("/:id", portfolioHandlers.Delete)

	// Trades (position reconciliation)
	reconciler := &trades.Reconciler{DB: db}
	tradeHandlers := &trades.Handlers{Reconciler: reconciler}
	app.Post("/api/v1/trades", requireAuth, tradeHandlers.ApplyTrade)

	// Assets (holdings read path)
	assetService := &assets.Service{DB: db}
	assetHandlers := &assets.Handlers{Service: assetService}
	app.Get("/api/v1/assets", requireAuth, assetHandlers.ListHoldings)

	// Transactions (ledger read/delete)
	ledgerService := &ledger.Service{DB: db}
	ledgerHandlers := &ledger.Handlers{Service: ledgerService}
	txGroup := app.Group("/api/v1/transactions", requireAuth)
	txGroup.Get("/", ledgerHandlers.ListTransactions)
	txGroup.Delete("/", ledgerHandlers.DeleteTransactions)

	// Product catalog
	catalogService := &catalog.Service{DB: db, Rdb: rdb}
	catalogHandlers := &catalog.Handlers{Service: catalogService}
	app.Get("/api/v1/products/search", requireAuth, catalogHandlers.SearchProducts)
}
