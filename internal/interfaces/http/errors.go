package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
)

// respondError mapea los errores de dominio a códigos HTTP. Los errores
// con payload (faltante de efectivo, relaciones que bloquean un borrado)
// incluyen Detail para que la UI lo muestre.
func respondError(c *fiber.Ctx, err error) error {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: valErr.Error()}
		if valErr.Shortfall.IsPositive() {
			resp.Detail = fiber.Map{"shortfall": valErr.Shortfall.StringFixed(2)}
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	var depErr *domain.DependencyError
	if errors.As(err, &depErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: depErr.Error(),
			Detail:  fiber.Map{"blockers": depErr.Blockers},
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrTaxIDAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
