package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/internal/cache"
	"github.com/osama1403/multimartserver/internal/catalog"
	"github.com/osama1403/multimartserver/internal/storage"
	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

// maxProductImages bounds one product's image batch.
const maxProductImages = 4

// SellerHandler serves the seller-side product management surface.
type SellerHandler struct {
	DB       *gorm.DB
	Ingestor *storage.Ingestor
	Cache    *cache.ListingCache
}

func NewSellerHandler(db *gorm.DB, ingestor *storage.Ingestor, listingCache *cache.ListingCache) *SellerHandler {
	return &SellerHandler{DB: db, Ingestor: ingestor, Cache: listingCache}
}

// RequireSeller rejects callers whose account is not a seller account.
func (h *SellerHandler) RequireSeller(c *fiber.Ctx) error {
	email := utils.Email(c)
	var user models.User
	if err := h.DB.Where("email = ? AND is_seller = ?", email, true).First(&user).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("unauthorized"))
	}
	return c.Next()
}

// GetSellerProducts - GET /api/seller/products
func (h *SellerHandler) GetSellerProducts(c *fiber.Ctx) error {
	email := utils.Email(c)

	products, err := catalog.SellerProducts(h.DB, email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

type sellerProductResponse struct {
	models.Product
	OrdersCount models.OrdersCount `json:"ordersCount"`
}

// GetSellerProduct - GET /api/seller/products/:id
func (h *SellerHandler) GetSellerProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid product id"))
	}

	email := utils.Email(c)
	product, rollup, err := catalog.SellerRollup(h.DB, email, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sellerProductResponse{Product: *product, OrdersCount: rollup})
}

// CreateProductRequest is the productData part of the create form. Categories
// must decode as a plain string array; any other shape rejects the request.
type CreateProductRequest struct {
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	Stock          int               `json:"stock"`
	Categories     []string          `json:"categories"`
	Specifications map[string]string `json:"specifications"`
	Description    string            `json:"description"`
	Customizations map[string]string `json:"customizations"`
}

// CreateProduct - POST /api/seller/products
// Multipart form: a productData JSON part plus up to 4 image files. Every
// image must upload before the product row is written, so a failed upload
// never leaves a partial-image product behind.
func (h *SellerHandler) CreateProduct(c *fiber.Ctx) error {
	email := utils.Email(c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}

	var req CreateProductRequest
	if len(form.Value["productData"]) == 0 ||
		json.Unmarshal([]byte(form.Value["productData"][0]), &req) != nil ||
		req.Categories == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}

	// Negative stock other than the always-available sentinel would slip
	// past every later guard, so reject it here.
	if req.Stock < 0 && req.Stock != models.UnlimitedStock {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid stock"))
	}

	files := form.File["images"]
	if len(files) > maxProductImages {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("too many images"))
	}

	uploads, err := readUploads(files)
	if err != nil {
		return respondError(c, err)
	}

	urls, err := h.Ingestor.Ingest(c.Context(), uploads)
	if err != nil {
		return respondError(c, err)
	}

	product := models.Product{
		Owner:          email,
		Name:           req.Name,
		Price:          req.Price,
		Stock:          req.Stock,
		Categories:     req.Categories,
		Specifications: req.Specifications,
		Description:    req.Description,
		Customizations: req.Customizations,
		Images:         urls,
		Date:           time.Now(),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for _, cat := range product.Categories {
			row := models.ProductCategory{ProductID: product.ID, Category: cat}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}

	h.Cache.Invalidate(c.Context())
	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "product added successfully",
		"product": product,
	})
}

// EditStockRequest
type EditStockRequest struct {
	ID    uint   `json:"id"`
	Mode  string `json:"mode"`
	Value int    `json:"value"`
}

// EditStock - PATCH /api/seller/products/stock
func (h *SellerHandler) EditStock(c *fiber.Ctx) error {
	email := utils.Email(c)

	var req EditStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}

	if err := catalog.EditStock(h.DB, email, req.ID, req.Mode, req.Value); err != nil {
		return respondError(c, err)
	}

	h.Cache.Invalidate(c.Context())
	return c.JSON(models.SuccessResponse("updated successfully"))
}

// readUploads pulls the raw bytes out of the multipart file headers.
func readUploads(files []*multipart.FileHeader) ([]storage.Upload, error) {
	uploads := make([]storage.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, storage.Upload{OriginalName: fh.Filename, Data: data})
	}
	return uploads, nil
}
