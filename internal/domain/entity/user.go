package entity

import (
	"strings"
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
)

// Role rol cerrado de un usuario del sistema.
type Role string

// Roles válidos. CUSTOMER existe para cuentas auto-registradas y queda
// fuera del flujo de ventas.
const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleSeller   Role = "SELLER"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole normaliza un rol (case-insensitive) a su forma canónica.
// Devuelve false si el valor no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RoleSeller:
		return RoleSeller, true
	case RoleCustomer:
		return RoleCustomer, true
	}
	return "", false
}

func (r Role) IsAdmin() bool   { return r == RoleAdmin }
func (r Role) IsManager() bool { return r == RoleManager }
func (r Role) IsSeller() bool  { return r == RoleSeller }

// Principal actor autenticado que ejecuta una operación. StoreID es la
// tienda base; vacío para ADMIN (sin tienda, acceso global).
type Principal struct {
	ID      string
	Role    Role
	StoreID string
}

// CanAccessAllStores true solo para ADMIN.
func (p Principal) CanAccessAllStores() bool { return p.Role.IsAdmin() }

// HomeStoreID tienda base del principal ("" para ADMIN).
func (p Principal) HomeStoreID() string { return p.StoreID }

// User representa un usuario del sistema (MANAGER y SELLER pertenecen a una Store).
type User struct {
	ID           string
	StoreID      string // vacío solo para ADMIN (y CUSTOMER)
	Email        string // único entre filas no borradas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Deleted      bool
	DeletedAt    *time.Time
	DeletedBy    string
}

// Principal proyecta el usuario como actor para autorización.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role, StoreID: u.StoreID}
}

// Validate invariante de tienda base: MANAGER y SELLER siempre tienen
// exactamente una tienda; ADMIN nunca tiene.
func (u *User) Validate() error {
	switch u.Role {
	case RoleManager, RoleSeller:
		if u.StoreID == "" {
			return domain.NewValidationError("manager y seller requieren tienda base")
		}
	case RoleAdmin:
		if u.StoreID != "" {
			return domain.NewValidationError("admin no puede tener tienda base")
		}
	}
	return nil
}
