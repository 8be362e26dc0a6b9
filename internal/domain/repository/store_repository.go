package repository

import (
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

// StoreRepository puerto de persistencia para tiendas. Todas las lecturas
// toman includeDeleted explícito: false excluye filas borradas lógicamente.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string, includeDeleted bool) (*entity.Store, error)
	List(includeDeleted bool, limit, offset int) ([]*entity.Store, error)
	Update(store *entity.Store) error
	// SoftDelete marca la fila como borrada con actor y timestamp.
	SoftDelete(id, actorID string, at time.Time) error
	// Restore limpia los campos de borrado y reactiva la tienda.
	Restore(id string, at time.Time) error
	// Dependents nombra las relaciones no borradas que referencian la
	// tienda (users, merchandise, sales); vacío si se puede borrar.
	Dependents(id string) ([]string, error)
}
