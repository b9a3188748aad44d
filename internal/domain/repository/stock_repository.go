package repository

import (
	"time"

	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
)

// StockLevel es la vista de existencias con los datos del producto para listados.
type StockLevel struct {
	ProductID   string
	ProductName string
	UnitMeasure string
	Quantity    int64
	UpdatedAt   time.Time
}

// StockRepository define el puerto para el registro de existencias por producto.
// La cantidad solo se muta vía AdjustQuantity; se usa dentro de transacciones.
type StockRepository interface {
	// Init crea la fila de existencias en cero; se invoca al crear el producto.
	Init(productID string) error
	Get(productID string) (*entity.Stock, error)
	// AdjustQuantity aplica un delta aditivo (UPDATE quantity = quantity + delta)
	// y devuelve la cantidad resultante. ErrNotFound si el producto no tiene fila.
	AdjustQuantity(productID string, delta int64) (int64, error)
	ListLevels(limit, offset int) ([]*StockLevel, error)
}
