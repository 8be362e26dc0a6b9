package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id, name, tax_id, email, phone, address, active, created_at, updated_at, deleted, deleted_at, deleted_by`

// Create persiste una tienda nueva.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, tax_id, email, phone, address, active, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, nullIfEmpty(store.TaxID), nullIfEmpty(store.Email),
		nullIfEmpty(store.Phone), nullIfEmpty(store.Address), store.Active,
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaxIDAlreadyExists
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID. includeDeleted false excluye borradas.
func (r *StoreRepo) GetByID(id string, includeDeleted bool) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	row := r.q.QueryRow(context.Background(), query, id)
	store, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

// List lista tiendas con paginación.
func (r *StoreRepo) List(includeDeleted bool, limit, offset int) ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores`
	if !includeDeleted {
		query += ` WHERE deleted = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, store)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de la tienda.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, active = $7, updated_at = $8
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, nullIfEmpty(store.TaxID), nullIfEmpty(store.Email),
		nullIfEmpty(store.Phone), nullIfEmpty(store.Address), store.Active, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaxIDAlreadyExists
		}
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// SoftDelete marca la tienda como borrada con actor y timestamp.
func (r *StoreRepo) SoftDelete(id, actorID string, at time.Time) error {
	query := `
		UPDATE stores SET deleted = TRUE, deleted_at = $2, deleted_by = $3, updated_at = $2
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query, id, at, actorID)
	if err != nil {
		return fmt.Errorf("soft delete store: %w", err)
	}
	return nil
}

// Restore limpia los campos de borrado y reactiva la tienda.
func (r *StoreRepo) Restore(id string, at time.Time) error {
	query := `
		UPDATE stores SET deleted = FALSE, deleted_at = NULL, deleted_by = NULL, active = TRUE, updated_at = $2
		WHERE id = $1 AND deleted = TRUE`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("restore store: %w", err)
	}
	return nil
}

// Dependents consulta las tres relaciones que bloquean el borrado de una
// tienda y nombra cada una que tenga filas activas.
func (r *StoreRepo) Dependents(id string) ([]string, error) {
	const query = `
		SELECT
		    EXISTS (SELECT 1 FROM users       u WHERE u.store_id = $1 AND u.deleted = FALSE),
		    EXISTS (SELECT 1 FROM merchandise m WHERE m.store_id = $1 AND m.deleted = FALSE),
		    EXISTS (SELECT 1 FROM sales       s WHERE s.store_id = $1 AND s.deleted = FALSE)`
	var hasUsers, hasMerch, hasSales bool
	err := r.q.QueryRow(context.Background(), query, id).Scan(&hasUsers, &hasMerch, &hasSales)
	if err != nil {
		return nil, fmt.Errorf("store dependents: %w", err)
	}
	var blockers []string
	if hasUsers {
		blockers = append(blockers, "usuarios")
	}
	if hasMerch {
		blockers = append(blockers, "mercancía")
	}
	if hasSales {
		blockers = append(blockers, "ventas")
	}
	return blockers, nil
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	var taxID, email, phone, address, deletedBy *string
	err := row.Scan(
		&s.ID, &s.Name, &taxID, &email, &phone, &address, &s.Active,
		&s.CreatedAt, &s.UpdatedAt, &s.Deleted, &s.DeletedAt, &deletedBy,
	)
	if err != nil {
		return nil, err
	}
	s.TaxID = derefStr(taxID)
	s.Email = derefStr(email)
	s.Phone = derefStr(phone)
	s.Address = derefStr(address)
	s.DeletedBy = derefStr(deletedBy)
	return &s, nil
}
