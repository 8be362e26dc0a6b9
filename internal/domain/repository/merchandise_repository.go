package repository

import (
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

// MerchandiseRepository puerto de persistencia para el catálogo.
// GetByID dentro de una venta resuelve el precio autoritativo: se lee en la
// misma transacción que los inserts para no usar precios viejos.
type MerchandiseRepository interface {
	Create(m *entity.Merchandise) error
	GetByID(id string, includeDeleted bool) (*entity.Merchandise, error)
	ListByStore(storeID string, includeDeleted bool, limit, offset int) ([]*entity.Merchandise, error)
	Update(m *entity.Merchandise) error
	SoftDelete(id, actorID string, at time.Time) error
	Restore(id string, at time.Time) error
}
