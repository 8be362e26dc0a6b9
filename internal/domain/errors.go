package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrTaxIDAlreadyExists = errors.New("el NIT ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
)

// ValidationError entrada inválida con detalle para el cliente.
// Shortfall solo se llena en ventas en efectivo con monto insuficiente
// (cuánto falta para cubrir el total).
type ValidationError struct {
	Reason    string
	Shortfall decimal.Decimal
}

func (e *ValidationError) Error() string {
	if e.Shortfall.IsPositive() {
		return fmt.Sprintf("%s (faltan %s)", e.Reason, e.Shortfall.StringFixed(2))
	}
	return e.Reason
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un error de validación simple.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// DependencyError conflicto al borrar un recurso que todavía tiene
// dependientes activos. Blockers nombra cada relación que bloquea.
type DependencyError struct {
	Resource string
	Blockers []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s tiene dependientes activos: %s", e.Resource, strings.Join(e.Blockers, ", "))
}

// Is permite errors.Is(err, domain.ErrConflict).
func (e *DependencyError) Is(target error) bool { return target == ErrConflict }
