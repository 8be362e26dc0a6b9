package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/lifecycle"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/usecase"
)

// StoreHandler CRUD de tiendas más borrado lógico y restauración.
type StoreHandler struct {
	storeUC     *usecase.StoreUseCase
	lifecycleUC *lifecycle.UseCase
}

// NewStoreHandler construye el handler de tiendas.
func NewStoreHandler(storeUC *usecase.StoreUseCase, lifecycleUC *lifecycle.UseCase) *StoreHandler {
	return &StoreHandler{storeUC: storeUC, lifecycleUC: lifecycleUC}
}

// Create godoc
// @Summary      Crea una tienda (solo ADMIN)
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateStoreRequest  true  "Tienda"
// @Success      201      {object}  dto.StoreResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.storeUC.Create(p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtiene una tienda por id
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.storeUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Lista tiendas no borradas
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        limit            query     int   false  "Límite"
// @Param        offset           query     int   false  "Offset"
// @Param        include_deleted  query     bool  false  "Incluir borradas (solo ADMIN)"
// @Success      200              {array}   dto.StoreResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.storeUC.List(p, c.QueryBool("include_deleted"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualiza una tienda (solo ADMIN)
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "ID de la tienda"
// @Param        request  body      dto.UpdateStoreRequest  true  "Campos a actualizar"
// @Success      200      {object}  dto.StoreResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [put]
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.storeUC.Update(p, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borra lógicamente una tienda (solo ADMIN, sin dependencias activas)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "Usuarios, mercancía o ventas activas bloquean el borrado"
// @Router       /api/stores/{id} [delete]
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.lifecycleUC.SoftDelete(p, lifecycle.KindStore, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaura una tienda borrada y la reactiva (solo ADMIN)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "La tienda no está borrada"
// @Router       /api/stores/{id}/restore [post]
func (h *StoreHandler) Restore(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.lifecycleUC.Restore(p, lifecycle.KindStore, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
