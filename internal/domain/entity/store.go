package entity

import "time"

// Store representa una tienda: límite de alcance para usuarios, mercancía y ventas.
type Store struct {
	ID        string
	Name      string
	TaxID     string // NIT, único entre filas no borradas (puede estar vacío)
	Email     string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
	DeletedAt *time.Time
	DeletedBy string
}
