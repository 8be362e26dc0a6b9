package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository (usable con pool o tx).
// Los tres inserts del agregado se llaman dentro de la misma tx vía TxRunner.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, store_id, seller_id, date, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.StoreID, sale.SellerID, sale.Date, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItems inserta todas las líneas en un solo batch (un round-trip).
func (r *SaleRepo) CreateItems(items []*entity.SaleLineItem) error {
	const query = `
		INSERT INTO sale_items (id, sale_id, merchandise_id, quantity)
		VALUES ($1, $2, $3, $4)`
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(query, it.ID, it.SaleID, it.MerchandiseID, it.Quantity)
	}
	br := r.q.SendBatch(context.Background(), b)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// CreatePayment persiste el pago único de la venta.
func (r *SaleRepo) CreatePayment(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, sale_id, amount, method, status, change, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SaleID, p.Amount, string(p.Method), p.Status, p.Change, nullIfEmpty(p.Note),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene solo la cabecera de una venta.
func (r *SaleRepo) GetByID(id string, includeDeleted bool) (*entity.Sale, error) {
	query := `
		SELECT id, store_id, seller_id, date, created_at, updated_at, deleted, deleted_at, deleted_by
		FROM sales WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	var s entity.Sale
	var deletedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.StoreID, &s.SellerID, &s.Date, &s.CreatedAt, &s.UpdatedAt,
		&s.Deleted, &s.DeletedAt, &deletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.DeletedBy = derefStr(deletedBy)
	return &s, nil
}

// GetAggregate lee la venta completa: cabecera con nombres de tienda y
// vendedor, líneas con descripción y precio vigentes, y el pago.
func (r *SaleRepo) GetAggregate(id string) (*entity.SaleAggregate, error) {
	const headerQuery = `
		SELECT s.id, s.store_id, s.seller_id, s.date, s.created_at, s.updated_at,
		       s.deleted, s.deleted_at, s.deleted_by,
		       st.name, u.name
		FROM sales s
		JOIN stores st ON st.id = s.store_id
		JOIN users  u  ON u.id  = s.seller_id
		WHERE s.id = $1`
	agg := &entity.SaleAggregate{}
	var deletedBy *string
	err := r.q.QueryRow(context.Background(), headerQuery, id).Scan(
		&agg.Sale.ID, &agg.Sale.StoreID, &agg.Sale.SellerID, &agg.Sale.Date,
		&agg.Sale.CreatedAt, &agg.Sale.UpdatedAt,
		&agg.Sale.Deleted, &agg.Sale.DeletedAt, &deletedBy,
		&agg.StoreName, &agg.SellerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale aggregate: %w", err)
	}
	agg.Sale.DeletedBy = derefStr(deletedBy)

	if err := r.loadItems(agg); err != nil {
		return nil, err
	}
	if err := r.loadPayment(agg); err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *SaleRepo) loadItems(agg *entity.SaleAggregate) error {
	const query = `
		SELECT i.id, i.merchandise_id, m.description, m.unit_price, i.quantity,
		       m.unit_price * i.quantity
		FROM sale_items i
		JOIN merchandise m ON m.id = i.merchandise_id
		WHERE i.sale_id = $1
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, agg.Sale.ID)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItemView
		if err := rows.Scan(&it.ID, &it.MerchandiseID, &it.Description, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		agg.Items = append(agg.Items, it)
	}
	return rows.Err()
}

func (r *SaleRepo) loadPayment(agg *entity.SaleAggregate) error {
	const query = `
		SELECT id, sale_id, amount, method, status, change, COALESCE(note, '')
		FROM payments WHERE sale_id = $1`
	var method string
	err := r.q.QueryRow(context.Background(), query, agg.Sale.ID).Scan(
		&agg.Payment.ID, &agg.Payment.SaleID, &agg.Payment.Amount, &method,
		&agg.Payment.Status, &agg.Payment.Change, &agg.Payment.Note,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil // venta sin pago: no debería ocurrir tras un commit
		}
		return fmt.Errorf("get payment: %w", err)
	}
	agg.Payment.Method = entity.PaymentMethod(method)
	return nil
}

// List lista ventas completas. El Scope se traduce a WHERE antes que los
// filtros del caller; el caller no lo puede ampliar.
func (r *SaleRepo) List(scope authz.Scope, f repository.SaleFilter, includeDeleted bool) ([]*entity.SaleAggregate, error) {
	query := `SELECT s.id FROM sales s WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if !includeDeleted {
		query += ` AND s.deleted = FALSE`
	}
	// Scope primero: tienda y/o vendedor fijados por el rol
	if !scope.All {
		query += ` AND s.store_id = ` + arg(scope.StoreID)
		if scope.SellerID != "" {
			query += ` AND s.seller_id = ` + arg(scope.SellerID)
		}
	}
	// Después los filtros del caller
	if f.From != nil {
		query += ` AND s.date >= ` + arg(*f.From)
	}
	if f.To != nil {
		query += ` AND s.date <= ` + arg(*f.To)
	}
	query += ` ORDER BY s.date DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan sale id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	list := make([]*entity.SaleAggregate, 0, len(ids))
	for _, id := range ids {
		agg, err := r.GetAggregate(id)
		if err != nil {
			return nil, err
		}
		if agg != nil {
			list = append(list, agg)
		}
	}
	return list, nil
}

// SoftDelete marca la venta como borrada.
func (r *SaleRepo) SoftDelete(id, actorID string, at time.Time) error {
	query := `
		UPDATE sales SET deleted = TRUE, deleted_at = $2, deleted_by = $3, updated_at = $2
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query, id, at, actorID)
	if err != nil {
		return fmt.Errorf("soft delete sale: %w", err)
	}
	return nil
}

// Restore limpia los campos de borrado.
func (r *SaleRepo) Restore(id string, at time.Time) error {
	query := `
		UPDATE sales SET deleted = FALSE, deleted_at = NULL, deleted_by = NULL, updated_at = $2
		WHERE id = $1 AND deleted = TRUE`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("restore sale: %w", err)
	}
	return nil
}
