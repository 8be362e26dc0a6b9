package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest rango de fechas para los reportes.
type ReportRequest struct {
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
}

// SalesSummaryResponse totales dentro del scope del principal.
type SalesSummaryResponse struct {
	SaleCount     int64           `json:"sale_count"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// DailySalesResponse fila de rollup por día.
type DailySalesResponse struct {
	Day        string          `json:"day"` // YYYY-MM-DD
	SaleCount  int64           `json:"sale_count"`
	GrossTotal decimal.Decimal `json:"gross_total"`
}

// SellerSalesResponse fila de rollup por vendedor.
type SellerSalesResponse struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	SaleCount  int64           `json:"sale_count"`
	GrossTotal decimal.Decimal `json:"gross_total"`
}

// PaymentMethodSalesResponse fila de rollup por método de pago.
type PaymentMethodSalesResponse struct {
	Method     string          `json:"method"`
	SaleCount  int64           `json:"sale_count"`
	GrossTotal decimal.Decimal `json:"gross_total"`
}
