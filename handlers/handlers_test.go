package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/osama1403/multimartserver/internal/storage"
	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

// memBlobStore keeps uploads in memory and hands out fake CDN URLs.
type memBlobStore struct {
	objects map[string][]byte
}

func (m *memBlobStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[name] = data
	return "https://cdn.test/" + name, nil
}

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	blob *memBlobStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dbPath := filepath.Join(t.TempDir(), "handlers_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductCategory{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	blob := &memBlobStore{}
	ingestor := storage.NewIngestor(blob)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(models.ErrorResponse("server error"))
		},
	})

	authHandler := NewAuthHandler(db)
	productHandler := NewProductHandler(db, nil)
	sellerHandler := NewSellerHandler(db, ingestor, nil)
	userHandler := NewUserHandler(db, ingestor)

	api := app.Group("/api")
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/login", authHandler.Login)

	api.Get("/products", productHandler.GetProducts)
	api.Post("/products/rate", utils.AuthMiddleware, productHandler.RateProduct)
	api.Get("/products/:id", productHandler.GetProduct)

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

	return &testEnv{app: app, db: db, blob: blob}
}

func (e *testEnv) createUser(t *testing.T, email, password string, seller bool) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{Email: email, Password: hash, IsSeller: seller}
	if seller {
		user.ShopName = "Shop of " + email
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createProduct(t *testing.T, owner string, p models.Product) models.Product {
	t.Helper()

	p.Owner = owner
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if err := e.db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	for _, cat := range p.Categories {
		if err := e.db.Create(&models.ProductCategory{ProductID: p.ID, Category: cat}).Error; err != nil {
			t.Fatalf("Failed to create category row: %v", err)
		}
	}
	return p
}

func token(t *testing.T, email string) string {
	t.Helper()

	tok, err := utils.GenerateToken(email, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return tok
}

func (e *testEnv) request(t *testing.T, method, path, bearer string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()

	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}
