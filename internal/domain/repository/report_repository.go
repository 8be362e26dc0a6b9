package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
)

// SalesSummary totales agregados de ventas dentro de un scope.
type SalesSummary struct {
	SaleCount     int64
	GrossTotal    decimal.Decimal
	AverageTicket decimal.Decimal
}

// DailySalesRow ventas agrupadas por día.
type DailySalesRow struct {
	Day        time.Time
	SaleCount  int64
	GrossTotal decimal.Decimal
}

// SellerSalesRow ventas agrupadas por vendedor.
type SellerSalesRow struct {
	SellerID   string
	SellerName string
	SaleCount  int64
	GrossTotal decimal.Decimal
}

// PaymentMethodRow ventas agrupadas por método de pago.
type PaymentMethodRow struct {
	Method     string
	SaleCount  int64
	GrossTotal decimal.Decimal
}

// ReportRepository consultas de solo lectura para dashboards y estadísticas
// personales. Usan las mismas bases soft-delete-aware que los listados y el
// mismo Scope que las escrituras.
type ReportRepository interface {
	SalesSummary(ctx context.Context, scope authz.Scope, from, to time.Time) (*SalesSummary, error)
	SalesByDay(ctx context.Context, scope authz.Scope, from, to time.Time) ([]DailySalesRow, error)
	SalesBySeller(ctx context.Context, scope authz.Scope, from, to time.Time) ([]SellerSalesRow, error)
	SalesByPaymentMethod(ctx context.Context, scope authz.Scope, from, to time.Time) ([]PaymentMethodRow, error)
}
