package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta (producto y cantidad). El precio no viaja:
// se congela del catálogo al crear la venta.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest body para POST /api/sales. Status se acepta en el body
// pero se ignora: toda venta nace pending.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	SaleDate   string            `json:"sale_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Status     string            `json:"status,omitempty"`
	Items      []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateSaleRequest body para PUT /api/sales/:id; los campos nil no se tocan.
// Status canceled dispara los reversos de inventario.
type UpdateSaleRequest struct {
	CustomerID *string            `json:"customer_id"`
	SaleDate   *string            `json:"sale_date"`
	Status     *string            `json:"status" validate:"omitempty,oneof=pending paid delivered canceled"`
	Items      *[]SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta con los snapshots congelados al crearla.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"number"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal" swaggertype:"number"`
}

// SaleResponse venta con detalle para GET /api/sales/:id.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	SaleDate     string             `json:"sale_date"`
	Status       string             `json:"status"`
	Total        decimal.Decimal    `json:"total" swaggertype:"number"`
	Items        []SaleItemResponse `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []*SaleResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
