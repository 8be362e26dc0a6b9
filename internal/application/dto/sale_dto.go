package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest ítem de una venta: solo id de mercancía y cantidad.
// El precio nunca viene del cliente.
type SaleItemRequest struct {
	MerchandiseID string `json:"merchandise_id" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
}

// RecordSaleRequest venta rápida: el servidor calcula total y vuelto.
// AmountTendered es obligatorio solo para CASH.
type RecordSaleRequest struct {
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method" validate:"required"`
	AmountTendered *decimal.Decimal  `json:"amount_tendered,omitempty"`
	Note           string            `json:"note,omitempty"`
}

// GuidedPaymentRequest pago pre-armado por el caller (venta guiada).
// Amount debe coincidir con el total calculado por el servidor.
type GuidedPaymentRequest struct {
	Method         string           `json:"method" validate:"required"`
	Amount         decimal.Decimal  `json:"amount" validate:"required"`
	AmountTendered *decimal.Decimal `json:"amount_tendered,omitempty"`
	Note           string           `json:"note,omitempty"`
}

// GuidedSaleRequest venta guiada: mismos ítems, pago explícito.
type GuidedSaleRequest struct {
	Items   []SaleItemRequest    `json:"items" validate:"required,min=1,dive"`
	Payment GuidedPaymentRequest `json:"payment" validate:"required"`
}

// SaleListRequest filtros de listado (el scope por rol se aplica antes).
type SaleListRequest struct {
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	PageRequest
}

// SaleItemResponse línea de venta con datos de mercancía des-normalizados.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	MerchandiseID string          `json:"merchandise_id"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int64           `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pago de la venta.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Status string          `json:"status"`
	Change decimal.Decimal `json:"change"`
	Note   string          `json:"note,omitempty"`
}

// SaleResponse agregado completo para recibos.
type SaleResponse struct {
	ID         string             `json:"id"`
	Date       time.Time          `json:"date"`
	StoreID    string             `json:"store_id"`
	StoreName  string             `json:"store_name"`
	SellerID   string             `json:"seller_id"`
	SellerName string             `json:"seller_name"`
	Items      []SaleItemResponse `json:"items"`
	Payment    PaymentResponse    `json:"payment"`
	Total      decimal.Decimal    `json:"total"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Page  PageRequest    `json:"page"`
}
