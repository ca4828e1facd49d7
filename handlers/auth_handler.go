package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

const tokenTTL = time.Hour * 72

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

// SignupRequest defines the payload for registration
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsSeller  bool   `json:"isSeller"`
	ShopName  string `json:"shopName"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("email and password are required"))
	}
	if req.IsSeller && req.ShopName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("shop name is required"))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return respondError(c, err)
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller,
		ShopName:  req.ShopName,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("user already exists"))
	}

	return c.JSON(models.SuccessResponse("user registered successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("invalid credentials"))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("invalid credentials"))
	}

	token, err := utils.GenerateToken(user.Email, tokenTTL)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "logged in",
		"token":   token,
		"user": fiber.Map{
			"email":          user.Email,
			"firstName":      user.FirstName,
			"lastName":       user.LastName,
			"isSeller":       user.IsSeller,
			"profilePicture": user.ProfilePicture,
		},
	})
}
