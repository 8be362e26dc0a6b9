package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/authz"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboards y estadísticas.
// Todas parten de la misma base: ventas no borradas dentro del Scope.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// scopeWhere traduce el Scope a condiciones SQL; se aplica antes de los
// filtros de fecha en todas las consultas.
func scopeWhere(scope authz.Scope, args *[]any) string {
	where := ""
	if !scope.All {
		*args = append(*args, scope.StoreID)
		where += fmt.Sprintf(" AND s.store_id = $%d", len(*args))
		if scope.SellerID != "" {
			*args = append(*args, scope.SellerID)
			where += fmt.Sprintf(" AND s.seller_id = $%d", len(*args))
		}
	}
	return where
}

// SalesSummary totales y ticket promedio dentro del scope y el rango.
func (r *ReportRepo) SalesSummary(ctx context.Context, scope authz.Scope, from, to time.Time) (*repository.SalesSummary, error) {
	var args []any
	where := scopeWhere(scope, &args)
	args = append(args, from)
	fromArg := len(args)
	args = append(args, to)
	toArg := len(args)
	query := fmt.Sprintf(`
		SELECT COUNT(s.id),
		       COALESCE(SUM(p.amount), 0),
		       COALESCE(AVG(p.amount), 0)
		FROM sales s
		JOIN payments p ON p.sale_id = s.id
		WHERE s.deleted = FALSE%s
		  AND s.date BETWEEN $%d AND $%d`, where, fromArg, toArg)

	var sum repository.SalesSummary
	err := r.q.QueryRow(ctx, query, args...).Scan(&sum.SaleCount, &sum.GrossTotal, &sum.AverageTicket)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesSummary: %w", err)
	}
	sum.AverageTicket = sum.AverageTicket.Round(2)
	return &sum, nil
}

// SalesByDay rollup por día (día truncado en la zona del servidor).
func (r *ReportRepo) SalesByDay(ctx context.Context, scope authz.Scope, from, to time.Time) ([]repository.DailySalesRow, error) {
	var args []any
	where := scopeWhere(scope, &args)
	args = append(args, from)
	fromArg := len(args)
	args = append(args, to)
	toArg := len(args)
	query := fmt.Sprintf(`
		SELECT DATE_TRUNC('day', s.date) AS day,
		       COUNT(s.id),
		       COALESCE(SUM(p.amount), 0)
		FROM sales s
		JOIN payments p ON p.sale_id = s.id
		WHERE s.deleted = FALSE%s
		  AND s.date BETWEEN $%d AND $%d
		GROUP BY day
		ORDER BY day`, where, fromArg, toArg)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByDay: %w", err)
	}
	defer rows.Close()
	var out []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.SaleCount, &row.GrossTotal); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesBySeller rollup por vendedor, mayor total primero.
func (r *ReportRepo) SalesBySeller(ctx context.Context, scope authz.Scope, from, to time.Time) ([]repository.SellerSalesRow, error) {
	var args []any
	where := scopeWhere(scope, &args)
	args = append(args, from)
	fromArg := len(args)
	args = append(args, to)
	toArg := len(args)
	query := fmt.Sprintf(`
		SELECT s.seller_id, u.name,
		       COUNT(s.id),
		       COALESCE(SUM(p.amount), 0)
		FROM sales s
		JOIN payments p ON p.sale_id = s.id
		JOIN users    u ON u.id = s.seller_id
		WHERE s.deleted = FALSE%s
		  AND s.date BETWEEN $%d AND $%d
		GROUP BY s.seller_id, u.name
		ORDER BY 4 DESC`, where, fromArg, toArg)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesBySeller: %w", err)
	}
	defer rows.Close()
	var out []repository.SellerSalesRow
	for rows.Next() {
		var row repository.SellerSalesRow
		if err := rows.Scan(&row.SellerID, &row.SellerName, &row.SaleCount, &row.GrossTotal); err != nil {
			return nil, fmt.Errorf("scan seller sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesByPaymentMethod rollup por método de pago.
func (r *ReportRepo) SalesByPaymentMethod(ctx context.Context, scope authz.Scope, from, to time.Time) ([]repository.PaymentMethodRow, error) {
	var args []any
	where := scopeWhere(scope, &args)
	args = append(args, from)
	fromArg := len(args)
	args = append(args, to)
	toArg := len(args)
	query := fmt.Sprintf(`
		SELECT p.method,
		       COUNT(s.id),
		       COALESCE(SUM(p.amount), 0)
		FROM sales s
		JOIN payments p ON p.sale_id = s.id
		WHERE s.deleted = FALSE%s
		  AND s.date BETWEEN $%d AND $%d
		GROUP BY p.method
		ORDER BY 3 DESC`, where, fromArg, toArg)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByPaymentMethod: %w", err)
	}
	defer rows.Close()
	var out []repository.PaymentMethodRow
	for rows.Next() {
		var row repository.PaymentMethodRow
		if err := rows.Scan(&row.Method, &row.SaleCount, &row.GrossTotal); err != nil {
			return nil, fmt.Errorf("scan payment method sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
