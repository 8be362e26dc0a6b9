// Package authz centraliza las decisiones de autorización por rol y por
// alcance de tienda. Ningún otro paquete debe re-derivar estas reglas:
// cada guard se compone de un chequeo de rol más SameStore.
package authz

import (
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
)

// SameStore regla de alcance reutilizable: ADMIN alcanza todo; el resto
// solo su tienda base.
func SameStore(p entity.Principal, storeID string) bool {
	return p.CanAccessAllStores() || (p.StoreID != "" && p.StoreID == storeID)
}

// Scope predicado implícito para listados de ventas. El query layer lo
// aplica antes de cualquier filtro del caller, de modo que un SELLER no
// puede ampliarlo con parámetros extra.
type Scope struct {
	All      bool
	StoreID  string
	SellerID string
}

// SaleScope devuelve el alcance de lectura de ventas del principal:
// ADMIN todo, MANAGER su tienda, SELLER sus propias ventas.
func SaleScope(p entity.Principal) (Scope, error) {
	switch {
	case p.Role.IsAdmin():
		return Scope{All: true}, nil
	case p.Role.IsManager():
		if p.StoreID == "" {
			return Scope{}, domain.ErrForbidden
		}
		return Scope{StoreID: p.StoreID}, nil
	case p.Role.IsSeller():
		if p.StoreID == "" {
			return Scope{}, domain.ErrForbidden
		}
		return Scope{StoreID: p.StoreID, SellerID: p.ID}, nil
	}
	return Scope{}, domain.ErrForbidden
}

// CanRecordSale SELLER y MANAGER registran ventas en su tienda base.
// ADMIN no tiene tienda base, así que la venta rápida no aplica para él.
func CanRecordSale(p entity.Principal) error {
	if !p.Role.IsSeller() && !p.Role.IsManager() {
		return domain.ErrForbidden
	}
	if p.StoreID == "" {
		return domain.ErrForbidden
	}
	return nil
}

// CanViewSale SELLER solo sus ventas; MANAGER las de su tienda; ADMIN todas.
func CanViewSale(p entity.Principal, sale *entity.Sale) error {
	switch {
	case p.Role.IsAdmin():
		return nil
	case p.Role.IsManager():
		if SameStore(p, sale.StoreID) {
			return nil
		}
	case p.Role.IsSeller():
		if SameStore(p, sale.StoreID) && sale.SellerID == p.ID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// CanManageMerchandise MANAGER solo en su tienda; ADMIN en cualquiera.
func CanManageMerchandise(p entity.Principal, storeID string) error {
	if p.Role.IsAdmin() {
		return nil
	}
	if p.Role.IsManager() && SameStore(p, storeID) {
		return nil
	}
	return domain.ErrForbidden
}

// CanManageSellers MANAGER solo vendedores de su tienda; ADMIN cualquiera.
func CanManageSellers(p entity.Principal, storeID string) error {
	if p.Role.IsAdmin() {
		return nil
	}
	if p.Role.IsManager() && SameStore(p, storeID) {
		return nil
	}
	return domain.ErrForbidden
}

// CanManageManagers solo ADMIN administra managers.
func CanManageManagers(p entity.Principal) error {
	if p.Role.IsAdmin() {
		return nil
	}
	return domain.ErrForbidden
}

// CanManageStores solo ADMIN administra tiendas.
func CanManageStores(p entity.Principal) error {
	if p.Role.IsAdmin() {
		return nil
	}
	return domain.ErrForbidden
}

// CanRestore solo ADMIN restaura registros borrados lógicamente.
func CanRestore(p entity.Principal) error {
	if p.Role.IsAdmin() {
		return nil
	}
	return domain.ErrForbidden
}
