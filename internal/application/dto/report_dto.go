package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesStatusSummary conteo e ingresos de ventas agrupadas por estado.
type SalesStatusSummary struct {
	Status  string          `json:"status"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue" swaggertype:"number"`
}

// RecentSale venta resumida para el panel.
type RecentSale struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	SaleDate     string          `json:"sale_date"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total" swaggertype:"number"`
}

// DashboardResponse contadores del panel para GET /api/reports/dashboard.
// TotalRevenue suma solo ventas paid y delivered.
type DashboardResponse struct {
	TotalProducts  int64                `json:"total_products"`
	TotalCustomers int64                `json:"total_customers"`
	TotalSales     int64                `json:"total_sales"`
	TotalRevenue   decimal.Decimal      `json:"total_revenue" swaggertype:"number"`
	SalesByStatus  []SalesStatusSummary `json:"sales_by_status"`
	LowStock       []StockLevelResponse `json:"low_stock"`
	RecentSales    []RecentSale         `json:"recent_sales"`
}

// LedgerAuditRow comparación entre existencias materializadas y la suma de
// deltas del ledger para un producto.
type LedgerAuditRow struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Materialized int64  `json:"materialized"`
	LedgerSum    int64  `json:"ledger_sum"`
	Consistent   bool   `json:"consistent"`
}

// LedgerAuditResponse resultado de GET /api/reports/ledger-audit.
type LedgerAuditResponse struct {
	Consistent bool             `json:"consistent"`
	Rows       []LedgerAuditRow `json:"rows"`
	CheckedAt  time.Time        `json:"checked_at,omitempty"`
}
