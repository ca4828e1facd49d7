package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/osama1403/multimartserver/config"
	"github.com/osama1403/multimartserver/handlers"
	"github.com/osama1403/multimartserver/internal/cache"
	"github.com/osama1403/multimartserver/internal/storage"
	"github.com/osama1403/multimartserver/middleware"
	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	if os.Getenv("SEED") == "true" {
		config.SeedUsers(db)
		config.SeedProducts(db)
	}

	blobStore, cleanup, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatal("Failed to set up blob storage:", err)
	}
	defer cleanup()
	ingestor := storage.NewIngestor(blobStore)

	var listingCache *cache.ListingCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		listingCache = cache.New(client, "listings:", cache.DefaultTTL)
		log.Println("Listing cache enabled at", cfg.RedisAddr)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Multimart Server",
		ServerHeader: "Multimart Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}
			return c.Status(code).JSON(models.ErrorResponse(msg))
		},
	})

	middleware.SetupMiddleware(app, cfg)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse("API is healthy"))
	})

	// Local blob storage is served straight from disk
	if cfg.NATSURL == "" {
		app.Static(cfg.BlobBaseURL, cfg.UploadDir)
	}

	authHandler := handlers.NewAuthHandler(db)
	productHandler := handlers.NewProductHandler(db, listingCache)
	sellerHandler := handlers.NewSellerHandler(db, ingestor, listingCache)
	userHandler := handlers.NewUserHandler(db, ingestor)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Post("/rate", utils.AuthMiddleware, productHandler.RateProduct)
	products.Get("/:id", productHandler.GetProduct)

	seller := api.Group("/seller", utils.AuthMiddleware, sellerHandler.RequireSeller)
	seller.Get("/products", sellerHandler.GetSellerProducts)
	seller.Post("/products", sellerHandler.CreateProduct)
	seller.Patch("/products/stock", sellerHandler.EditStock)
	seller.Get("/products/:id", sellerHandler.GetSellerProduct)

	user := api.Group("/user", utils.AuthMiddleware)
	user.Get("/profile", userHandler.GetProfile)
	user.Put("/profile", userHandler.UpdateInfo)
	user.Put("/profile/picture", userHandler.UpdateProfilePicture)
	user.Put("/password", userHandler.ChangePassword)

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s", cfg.Host, cfg.AppPort)

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// buildBlobStore picks the configured blob backend: JetStream when a NATS URL
// is set, local disk otherwise.
func buildBlobStore(cfg *config.Config) (storage.BlobStore, func(), error) {
	if cfg.NATSURL != "" {
		js, err := storage.NewJetStreamStore(context.Background(), cfg.NATSURL, cfg.BlobBucket, cfg.BlobBaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Using JetStream blob storage bucket", cfg.BlobBucket)
		return js, js.Close, nil
	}
	local, err := storage.NewLocalStore(cfg.UploadDir, cfg.BlobBaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Using local blob storage at", cfg.UploadDir)
	return local, func() {}, nil
}
