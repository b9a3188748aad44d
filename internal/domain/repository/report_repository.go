package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// SalesStatusSummary resultado crudo del agregado de ventas por estado.
// Lo produce la DB; el use case lo convierte en DTO.
type SalesStatusSummary struct {
	Status  string
	Count   int64
	Revenue decimal.Decimal // suma de totales de las ventas en ese estado
}

// LedgerAuditRow compara la cantidad materializada en stocks contra la suma
// con signo del ledger de movimientos para un producto.
type LedgerAuditRow struct {
	ProductID    string
	ProductName  string
	Materialized int64 // stocks.quantity
	LedgerSum    int64 // compras + reversos - ventas
	Consistent   bool
}

// ReportRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	// SalesByStatus agrupa las ventas por estado con conteo e ingreso total.
	SalesByStatus(ctx context.Context) ([]SalesStatusSummary, error)
	// LowStock devuelve los productos con existencia menor o igual al umbral.
	LowStock(ctx context.Context, threshold int64, limit int) ([]*StockLevel, error)
	// LedgerAudit verifica, producto por producto, que la cantidad materializada
	// coincida con la suma neta del ledger de movimientos.
	LedgerAudit(ctx context.Context) ([]LedgerAuditRow, error)
}
