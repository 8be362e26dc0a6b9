package sales

import (
	"context"

	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del agregado de venta:
// si fn retorna error, nada queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		merchRepo repository.MerchandiseRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
