package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/lifecycle"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/usecase"
)

// MerchandiseHandler catálogo de mercancía por tienda.
type MerchandiseHandler struct {
	merchUC     *usecase.MerchandiseUseCase
	lifecycleUC *lifecycle.UseCase
}

// NewMerchandiseHandler construye el handler de mercancía.
func NewMerchandiseHandler(merchUC *usecase.MerchandiseUseCase, lifecycleUC *lifecycle.UseCase) *MerchandiseHandler {
	return &MerchandiseHandler{merchUC: merchUC, lifecycleUC: lifecycleUC}
}

// Create godoc
// @Summary      Cataloga un artículo con precio unitario autoritativo
// @Tags         merchandise
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateMerchandiseRequest  true  "Artículo"
// @Success      201      {object}  dto.MerchandiseResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      403      {object}  dto.ErrorResponse
// @Router       /api/merchandise [post]
func (h *MerchandiseHandler) Create(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMerchandiseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.merchUC.Create(p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtiene un artículo del catálogo
// @Tags         merchandise
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.MerchandiseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/merchandise/{id} [get]
func (h *MerchandiseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.merchUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByStore godoc
// @Summary      Lista el catálogo de una tienda
// @Tags         merchandise
// @Security     Bearer
// @Produce      json
// @Param        store_id  query     string  false  "Tienda (roles con tienda quedan fijados a la suya)"
// @Param        limit     query     int     false  "Límite"
// @Param        offset    query     int     false  "Offset"
// @Success      200       {array}   dto.MerchandiseResponse
// @Router       /api/merchandise [get]
func (h *MerchandiseHandler) ListByStore(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.merchUC.ListByStore(p, c.Query("store_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Edita descripción o precio de un artículo
// @Tags         merchandise
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "ID del artículo"
// @Param        request  body      dto.UpdateMerchandiseRequest  true  "Campos a actualizar"
// @Success      200      {object}  dto.MerchandiseResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/merchandise/{id} [put]
func (h *MerchandiseHandler) Update(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateMerchandiseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	out, err := h.merchUC.Update(p, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borra lógicamente un artículo; las ventas existentes lo conservan
// @Tags         merchandise
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/merchandise/{id} [delete]
func (h *MerchandiseHandler) Delete(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.lifecycleUC.SoftDelete(p, lifecycle.KindMerchandise, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaura un artículo borrado (solo ADMIN)
// @Tags         merchandise
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "El artículo no está borrado"
// @Router       /api/merchandise/{id}/restore [post]
func (h *MerchandiseHandler) Restore(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.lifecycleUC.Restore(p, lifecycle.KindMerchandise, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
