package entity

import "time"

// Stock representa la existencia actual de un producto (vista materializada del ledger).
// Quantity es siempre la suma neta de los movimientos aplicados; puede quedar
// negativa si se sobrevende, no hay piso en cero.
type Stock struct {
	ProductID string
	Quantity  int64
	UpdatedAt time.Time
}
