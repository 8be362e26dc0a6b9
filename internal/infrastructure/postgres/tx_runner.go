package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/application/sales"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es la única primitiva de atomicidad del registro de ventas: si fn falla,
// el Rollback deja la BD exactamente como estaba.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Aislamiento read-committed del servidor: una edición
// concurrente de precio se ve entera o no se ve, nunca partida.
func (r *TxRunner) Run(ctx context.Context, fn func(
	merchRepo repository.MerchandiseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	merchRepo := NewMerchandiseRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(merchRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
