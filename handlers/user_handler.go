package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/osama1403/multimartserver/internal/storage"
	"github.com/osama1403/multimartserver/models"
	"github.com/osama1403/multimartserver/utils"
)

// UserHandler serves profile reads and updates for the authenticated account.
type UserHandler struct {
	DB       *gorm.DB
	Ingestor *storage.Ingestor
}

func NewUserHandler(db *gorm.DB, ingestor *storage.Ingestor) *UserHandler {
	return &UserHandler{DB: db, Ingestor: ingestor}
}

type profileResponse struct {
	models.User
	TotalOrders int64 `json:"totalOrders"`
}

// GetProfile - GET /api/user/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	email := utils.Email(c)

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return respondError(c, err)
	}

	var totalOrders int64
	if err := h.DB.Model(&models.Order{}).Where("owner = ?", email).Count(&totalOrders).Error; err != nil {
		return respondError(c, err)
	}

	return c.JSON(profileResponse{User: user, TotalOrders: totalOrders})
}

// UpdateInfoRequest
type UpdateInfoRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
}

// UpdateInfo - PUT /api/user/profile
// Overwrites the named fields unconditionally, matching the client contract.
func (h *UserHandler) UpdateInfo(c *fiber.Ctx) error {
	email := utils.Email(c)

	var req UpdateInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}

	err := h.DB.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"phone":      req.Phone,
		"address1":   req.Address1,
		"address2":   req.Address2,
	}).Error
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse("info updated successfully"))
}

// UpdateProfilePicture - PUT /api/user/profile/picture
func (h *UserHandler) UpdateProfilePicture(c *fiber.Ctx) error {
	email := utils.Email(c)

	fh, err := c.FormFile("img")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("image file is required"))
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return respondError(c, err)
	}

	urls, err := h.Ingestor.Ingest(c.Context(), []storage.Upload{
		{OriginalName: fh.Filename, Data: data},
	})
	if err != nil {
		return respondError(c, err)
	}

	err = h.DB.Model(&models.User{}).Where("email = ?", email).
		Update("profile_picture", urls[0]).Error
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "profile picture updated successfully",
		"img":     urls[0],
	})
}

// ChangePasswordRequest
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword - PUT /api/user/password
// A wrong password and an unknown account answer identically so the endpoint
// cannot be used to probe which emails exist.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	email := utils.Email(c)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("invalid request"))
	}
	if req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("new password is required"))
	}

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("invalid password"))
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("invalid password"))
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}

	err = h.DB.Model(&models.User{}).Where("email = ?", email).
		Update("password", hashed).Error
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse("password updated successfully"))
}
