package repository

import (
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string, includeDeleted bool) (*entity.User, error)
	// GetByEmail solo busca entre filas no borradas (login).
	GetByEmail(email string) (*entity.User, error)
	List(includeDeleted bool, limit, offset int) ([]*entity.User, error)
	ListByStore(storeID string, includeDeleted bool, limit, offset int) ([]*entity.User, error)
	ListByRole(role entity.Role, includeDeleted bool, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	SoftDelete(id, actorID string, at time.Time) error
	Restore(id string, at time.Time) error
}
