package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchandise representa un artículo del catálogo de una tienda.
// UnitPrice es el precio autoritativo: las ventas siempre lo leen de aquí,
// nunca del cliente.
type Merchandise struct {
	ID          string
	StoreID     string
	UserID      string // quién lo catalogó
	Description string
	UnitPrice   decimal.Decimal // > 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Deleted     bool
	DeletedAt   *time.Time
	DeletedBy   string
}
