package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/osama1403/multimartserver/internal/catalog"
	"github.com/osama1403/multimartserver/internal/storage"
	"github.com/osama1403/multimartserver/models"
)

// respondError maps domain errors onto the uniform failure envelope. Anything
// unrecognized is logged and collapsed to a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, catalog.ErrForbidden), errors.Is(err, catalog.ErrNotEligible):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, catalog.ErrValue),
		errors.Is(err, catalog.ErrUnknownMode),
		errors.Is(err, catalog.ErrUnlimitedStock),
		errors.Is(err, storage.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	default:
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("server error"))
	}
}
