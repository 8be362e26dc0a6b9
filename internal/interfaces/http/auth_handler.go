package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/auth"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
)

// AuthHandler endpoints públicos de autenticación.
type AuthHandler struct {
	authUC *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(authUC *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login godoc
// @Summary      Autentica con email y password y devuelve un JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.LoginRequest  true  "Credenciales"
// @Success      200      {object}  dto.LoginResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.authUC.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
