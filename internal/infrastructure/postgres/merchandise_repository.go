package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

var _ repository.MerchandiseRepository = (*MerchandiseRepo)(nil)

// MerchandiseRepo implementación del puerto MerchandiseRepository (usable con pool o tx).
type MerchandiseRepo struct {
	q Querier
}

// NewMerchandiseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMerchandiseRepository(q Querier) *MerchandiseRepo {
	return &MerchandiseRepo{q: q}
}

const merchandiseColumns = `id, store_id, user_id, description, unit_price, created_at, updated_at, deleted, deleted_at, deleted_by`

// Create cataloga un artículo.
func (r *MerchandiseRepo) Create(m *entity.Merchandise) error {
	query := `
		INSERT INTO merchandise (id, store_id, user_id, description, unit_price, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StoreID, m.UserID, m.Description, m.UnitPrice, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchandise: %w", err)
	}
	return nil
}

// GetByID resuelve un artículo por ID. Dentro de una venta se llama con el
// Querier de la tx: el precio leído es el vigente en esa transacción.
func (r *MerchandiseRepo) GetByID(id string, includeDeleted bool) (*entity.Merchandise, error) {
	query := `SELECT ` + merchandiseColumns + ` FROM merchandise WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	row := r.q.QueryRow(context.Background(), query, id)
	m, err := scanMerchandise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchandise: %w", err)
	}
	return m, nil
}

// ListByStore catálogo de una tienda con paginación.
func (r *MerchandiseRepo) ListByStore(storeID string, includeDeleted bool, limit, offset int) ([]*entity.Merchandise, error) {
	query := `SELECT ` + merchandiseColumns + ` FROM merchandise WHERE store_id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	query += ` ORDER BY description LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list merchandise: %w", err)
	}
	defer rows.Close()
	var list []*entity.Merchandise
	for rows.Next() {
		m, err := scanMerchandise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan merchandise: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update edita descripción y precio de un artículo no borrado.
func (r *MerchandiseRepo) Update(m *entity.Merchandise) error {
	query := `
		UPDATE merchandise SET description = $2, unit_price = $3, updated_at = $4
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.Description, m.UnitPrice, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update merchandise: %w", err)
	}
	return nil
}

// SoftDelete marca el artículo como borrado.
func (r *MerchandiseRepo) SoftDelete(id, actorID string, at time.Time) error {
	query := `
		UPDATE merchandise SET deleted = TRUE, deleted_at = $2, deleted_by = $3, updated_at = $2
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query, id, at, actorID)
	if err != nil {
		return fmt.Errorf("soft delete merchandise: %w", err)
	}
	return nil
}

// Restore limpia los campos de borrado.
func (r *MerchandiseRepo) Restore(id string, at time.Time) error {
	query := `
		UPDATE merchandise SET deleted = FALSE, deleted_at = NULL, deleted_by = NULL, updated_at = $2
		WHERE id = $1 AND deleted = TRUE`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("restore merchandise: %w", err)
	}
	return nil
}

func scanMerchandise(row pgx.Row) (*entity.Merchandise, error) {
	var m entity.Merchandise
	var deletedBy *string
	err := row.Scan(
		&m.ID, &m.StoreID, &m.UserID, &m.Description, &m.UnitPrice,
		&m.CreatedAt, &m.UpdatedAt, &m.Deleted, &m.DeletedAt, &deletedBy,
	)
	if err != nil {
		return nil, err
	}
	m.DeletedBy = derefStr(deletedBy)
	return &m, nil
}
