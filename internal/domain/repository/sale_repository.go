package repository

import (
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

// SaleFilter filtros del caller para listados de ventas. Se aplican después
// del Scope de autorización, nunca en su lugar.
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SaleRepository puerto de persistencia para el agregado de venta.
// Create/CreateItems/CreatePayment se llaman dentro de una transacción
// (TxRunner); el agregado nunca queda persistido parcial.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// CreateItems inserta todas las líneas en un solo batch.
	CreateItems(items []*entity.SaleLineItem) error
	CreatePayment(p *entity.Payment) error
	GetByID(id string, includeDeleted bool) (*entity.Sale, error)
	// GetAggregate lee la venta completa (cabecera + nombres + líneas + pago).
	GetAggregate(id string) (*entity.SaleAggregate, error)
	// List aplica primero el scope y después los filtros del caller.
	List(scope authz.Scope, f SaleFilter, includeDeleted bool) ([]*entity.SaleAggregate, error)
	SoftDelete(id, actorID string, at time.Time) error
	Restore(id string, at time.Time) error
}
