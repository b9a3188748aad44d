package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Type admite purchase o sale; sale_reversal lo emite solo la cancelación de ventas.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=purchase sale"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// MovementResponse entrada del ledger en respuestas. ProductName es el snapshot
// tomado al registrar el movimiento, no el nombre actual del producto.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	SaleID      string    `json:"sale_id,omitempty"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Delta       int64     `json:"delta"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelResponse existencias actuales de un producto.
type StockLevelResponse struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitMeasure string    `json:"unit_measure"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockListResponse listado de existencias.
type StockListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
