package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el panel y la auditoría del ledger.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// CountProducts cuenta los productos del catálogo.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("reports.CountProducts: %w", err)
	}
	return n, nil
}

// CountCustomers cuenta los clientes registrados.
func (r *ReportRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("reports.CountCustomers: %w", err)
	}
	return n, nil
}

// SalesByStatus agrupa ventas por estado con conteo e ingreso.
// Usa COALESCE para devolver cero si un grupo no tiene filas.
func (r *ReportRepo) SalesByStatus(ctx context.Context) ([]repository.SalesStatusSummary, error) {
	const query = `
	SELECT
	    status,
	    COUNT(*)                 AS sale_count,
	    COALESCE(SUM(total), 0)  AS revenue
	FROM sales
	GROUP BY status
	ORDER BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.SalesStatusSummary
	for rows.Next() {
		var row repository.SalesStatusSummary
		if err := rows.Scan(&row.Status, &row.Count, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.SalesByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LowStock devuelve los productos con existencias en o por debajo del umbral,
// los más escasos primero.
func (r *ReportRepo) LowStock(ctx context.Context, threshold int64, limit int) ([]*repository.StockLevel, error) {
	const query = `
	SELECT s.product_id, p.name, p.unit_measure, s.quantity, s.updated_at
	FROM stocks s
	JOIN products p ON p.id = s.product_id
	WHERE s.quantity <= $1
	ORDER BY s.quantity, p.name
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStock: %w", err)
	}
	defer rows.Close()

	var results []*repository.StockLevel
	for rows.Next() {
		var lvl repository.StockLevel
		if err := rows.Scan(&lvl.ProductID, &lvl.ProductName, &lvl.UnitMeasure, &lvl.Quantity, &lvl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reports.LowStock scan: %w", err)
		}
		results = append(results, &lvl)
	}
	return results, rows.Err()
}

// LedgerAudit compara, producto por producto, la cantidad materializada en
// stocks contra la suma con signo del ledger: purchase y sale_reversal suman,
// sale resta. Una diferencia delata un ajuste hecho por fuera del ledger.
func (r *ReportRepo) LedgerAudit(ctx context.Context) ([]repository.LedgerAuditRow, error) {
	const query = `
	SELECT
	    s.product_id,
	    p.name                                                                       AS product_name,
	    s.quantity                                                                   AS materialized,
	    COALESCE(SUM(CASE WHEN m.type = 'sale' THEN -m.quantity ELSE m.quantity END), 0) AS ledger_sum
	FROM stocks s
	JOIN products p ON p.id = s.product_id
	LEFT JOIN inventory_movements m ON m.product_id = s.product_id
	GROUP BY s.product_id, p.name, s.quantity
	ORDER BY p.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.LedgerAudit: %w", err)
	}
	defer rows.Close()

	var results []repository.LedgerAuditRow
	for rows.Next() {
		var row repository.LedgerAuditRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Materialized, &row.LedgerSum); err != nil {
			return nil, fmt.Errorf("reports.LedgerAudit scan: %w", err)
		}
		row.Consistent = row.Materialized == row.LedgerSum
		results = append(results, row)
	}
	return results, rows.Err()
}
