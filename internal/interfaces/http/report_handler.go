package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/dto"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/sales"
)

// ReportHandler reportes y estadísticas personales (protegido).
// El scope por rol se aplica dentro del caso de uso: un SELLER solo ve
// sus propios números aunque pida otra cosa.
type ReportHandler struct {
	queryUC *sales.QueryUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(queryUC *sales.QueryUseCase) *ReportHandler {
	return &ReportHandler{queryUC: queryUC}
}

// Summary godoc
// @Summary      Totales y ticket promedio dentro del alcance del rol
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.queryUC.SalesSummary(c.Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByDay godoc
// @Summary      Ventas agrupadas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DailySalesResponse
// @Router       /api/reports/by-day [get]
func (h *ReportHandler) ByDay(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.queryUC.SalesByDay(c.Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BySeller godoc
// @Summary      Ventas agrupadas por vendedor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SellerSalesResponse
// @Router       /api/reports/by-seller [get]
func (h *ReportHandler) BySeller(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.queryUC.SalesBySeller(c.Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByPaymentMethod godoc
// @Summary      Ventas agrupadas por método de pago
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentMethodSalesResponse
// @Router       /api/reports/by-payment-method [get]
func (h *ReportHandler) ByPaymentMethod(c *fiber.Ctx) error {
	p, ok := GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.queryUC.SalesByPaymentMethod(c.Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
