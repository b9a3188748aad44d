package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	UnitMeasure string          `json:"unit_measure" validate:"omitempty,oneof=weight unit"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no se tocan.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,oneof=weight unit"`
}

// ProductResponse salida de un producto. Las existencias no viajan acá: se
// consultan por el módulo de inventario.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	UnitMeasure string          `json:"unit_measure"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []*ProductResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
