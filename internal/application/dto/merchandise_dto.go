package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMerchandiseRequest entrada para catalogar mercancía.
type CreateMerchandiseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=300"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	StoreID     string          `json:"store_id"` // solo ADMIN; managers usan su tienda
}

// UpdateMerchandiseRequest entrada para editar mercancía.
type UpdateMerchandiseRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=300"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// MerchandiseResponse salida de un artículo del catálogo.
type MerchandiseResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Deleted     bool            `json:"deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
