package catalog

import (
	"context"

	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// TxRunner abre la transacción que crea el producto junto con su fila de
// existencias en cero. Ningún producto queda sin fila de stock.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		stockRepo repository.StockRepository,
	) error) error
}
