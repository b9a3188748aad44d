package entity

import "time"

// MovementType es el tipo de un movimiento de inventario.
type MovementType string

// Tipos de movimiento válidos.
const (
	MovementPurchase     MovementType = "purchase"      // compra, suma stock
	MovementSale         MovementType = "sale"          // venta, resta stock
	MovementSaleReversal MovementType = "sale_reversal" // reverso de venta cancelada, suma stock
)

// Valid reporta si el tipo pertenece al conjunto cerrado de movimientos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementSaleReversal:
		return true
	}
	return false
}

// InventoryMovement es una entrada inmutable del ledger de inventario.
// Nunca se actualiza ni se borra; el reverso de una venta se registra como
// un movimiento nuevo de tipo sale_reversal.
type InventoryMovement struct {
	ID          string
	ProductID   string
	ProductName string // snapshot, sobrevive si el producto se borra
	SaleID      string // venta que lo originó, vacío en movimientos manuales
	Type        MovementType
	Quantity    int64 // siempre positivo, el signo lo decide el tipo
	CreatedAt   time.Time
}

// Delta devuelve el efecto con signo del movimiento sobre el stock:
// purchase y sale_reversal suman, sale resta.
func (m *InventoryMovement) Delta() int64 {
	if m.Type == MovementSale {
		return -m.Quantity
	}
	return m.Quantity
}
