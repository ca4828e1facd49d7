package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/internal/cache"
	"github.com/osama1403/multimartserver/internal/catalog"
	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

// ProductHandler serves the public catalog: listings, detail and ratings.
type ProductHandler struct {
	DB    *gorm.DB
	Cache *cache.ListingCache
}

func NewProductHandler(db *gorm.DB, listingCache *cache.ListingCache) *ProductHandler {
	return &ProductHandler{DB: db, Cache: listingCache}
}

type listingResponse struct {
	Products []models.Product   `json:"products"`
	Info     models.ListingInfo `json:"info"`
}

// productDetailResponse swaps the raw owner email for the seller summary.
type productDetailResponse struct {
	models.Product
	Owner models.OwnerSummary `json:"owner"`
}

// GetProducts - GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	var categories []string
	for _, v := range c.Context().QueryArgs().PeekMulti("categories") {
		if len(v) > 0 {
			categories = append(categories, string(v))
		}
	}

	q := catalog.ParseListQuery(c.Query("search"), c.Query("order"), c.Query("page"), categories)

	key := cache.ListingKey(q.Search, q.Order, q.Page, q.Categories)
	body, err := h.Cache.Fetch(c.Context(), key, func() ([]byte, error) {
		products, count, err := catalog.List(h.DB, q)
		if err != nil {
			return nil, err
		}
		return json.Marshal(listingResponse{
			Products: products,
			Info:     models.ListingInfo{Count: count, Page: q.Page},
		})
	})
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseProductID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid product id"))
	}

	product, owner, err := catalog.Detail(h.DB, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(productDetailResponse{Product: *product, Owner: *owner})
}

// RateProductRequest
type RateProductRequest struct {
	ID   uint `json:"id"`
	Rate int  `json:"rate"`
}

// RateProduct - POST /api/products/rate
func (h *ProductHandler) RateProduct(c *fiber.Ctx) error {
	email := utils.Email(c)

	var req RateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}

	if err := catalog.RateProduct(h.DB, email, req.ID, req.Rate); err != nil {
		return respondError(c, err)
	}

	h.Cache.Invalidate(c.Context())
	return c.JSON(models.SuccessResponse("rated successfully"))
}

func parseProductID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, catalog.ErrValue
	}
	return uint(id), nil
}
