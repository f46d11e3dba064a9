package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-stock/internal/application/dto"
	"github.com/tu-usuario/marketplace-stock/internal/domain"
)

// domainError mapea un error de dominio a status HTTP + ErrorResponse.
// El mensaje del error envuelto conserva las cantidades para diagnóstico
// (disponible vs solicitado, reservado vs solicitado).
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "INVALID_INPUT", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrProductNotAvailable):
		return respond(c, fiber.StatusConflict, "PRODUCT_NOT_AVAILABLE", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrInsufficientReserved):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_RESERVED_STOCK", err)
	case errors.Is(err, domain.ErrReleaseFailed):
		return respond(c, fiber.StatusConflict, "RELEASE_FAILED", err)
	case errors.Is(err, domain.ErrAvailableLessThanReserved):
		return respond(c, fiber.StatusUnprocessableEntity, "AVAILABLE_LESS_THAN_RESERVED", err)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
