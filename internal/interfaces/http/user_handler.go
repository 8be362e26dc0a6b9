package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/lifecycle"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/usecase"
)

// UserHandler administración de managers y sellers. El alcance lo decide el
// caso de uso: un MANAGER solo toca los sellers de su tienda.
type UserHandler struct {
	userUC      *usecase.UserUseCase
	lifecycleUC *lifecycle.UseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(userUC *usecase.UserUseCase, lifecycleUC *lifecycle.UseCase) *UserHandler {
	return &UserHandler{userUC: userUC, lifecycleUC: lifecycleUC}
}

// Create godoc
// @Summary      Crea un manager (ADMIN) o un seller (ADMIN o MANAGER de la tienda)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateUserRequest  true  "Usuario"
// @Success      201      {object}  dto.UserResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse  "Email ya registrado"
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.userUC.Create(p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtiene un usuario dentro del alcance del solicitante
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.userUC.GetByID(p, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSellers godoc
// @Summary      Lista los sellers de una tienda
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        store_id  query     string  false  "Tienda (los managers quedan fijados a la suya)"
// @Param        limit     query     int     false  "Límite"
// @Param        offset    query     int     false  "Offset"
// @Success      200       {array}   dto.UserResponse
// @Router       /api/users/sellers [get]
func (h *UserHandler) ListSellers(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.userUC.ListSellers(p, c.Query("store_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListManagers godoc
// @Summary      Lista los managers del sistema (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query    int  false  "Límite"
// @Param        offset  query    int  false  "Offset"
// @Success      200     {array}  dto.UserResponse
// @Failure      403     {object} dto.ErrorResponse
// @Router       /api/users/managers [get]
func (h *UserHandler) ListManagers(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.userUC.ListManagers(p, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualiza nombre, email o password de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "ID del usuario"
// @Param        request  body      dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200      {object}  dto.UserResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.userUC.Update(p, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borra lógicamente un usuario; sus ventas registradas permanecen
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.lifecycleUC.SoftDelete(p, lifecycle.KindUser, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaura un usuario borrado (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "El usuario no está borrado"
// @Router       /api/users/{id}/restore [post]
func (h *UserHandler) Restore(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.lifecycleUC.Restore(p, lifecycle.KindUser, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
