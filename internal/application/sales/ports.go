package sales

import (
	"context"

	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que cubre ventas e
// inventario. Venta, movimientos del ledger y ajustes de existencias se
// confirman como una sola unidad.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// InventoryApplier aplica un movimiento del ledger usando los repositorios del
// caller (misma transacción). Si retorna error el caller debe abortar la tx.
type InventoryApplier interface {
	ApplyInTx(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		movement *entity.InventoryMovement,
	) error
}

// ReceiptPDFGenerator genera el comprobante PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error)
}

// SaleXMLExporter serializa una venta al XML de intercambio contable.
type SaleXMLExporter interface {
	ExportSaleXML(sale *entity.Sale) ([]byte, error)
}
