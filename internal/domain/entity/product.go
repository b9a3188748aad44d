package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitMeasure es la unidad de venta de un producto.
type UnitMeasure string

// Unidades de medida válidas.
const (
	UnitMeasureWeight UnitMeasure = "weight" // vendido por peso (granel)
	UnitMeasureUnit   UnitMeasure = "unit"   // vendido por unidad (botella, caja)
)

// Valid reporta si el valor pertenece al conjunto cerrado de unidades.
func (u UnitMeasure) Valid() bool {
	return u == UnitMeasureWeight || u == UnitMeasureUnit
}

// Product representa un vino o artículo del catálogo.
// El stock vive en Stock y solo cambia vía movimientos de inventario.
type Product struct {
	ID          string
	Name        string // único en el catálogo
	Description string
	Price       decimal.Decimal // precio de venta, nunca negativo
	UnitMeasure UnitMeasure
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
