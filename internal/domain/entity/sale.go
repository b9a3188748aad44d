package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus es el estado de una venta.
type SaleStatus string

// Estados válidos de una venta.
const (
	SaleStatusPending   SaleStatus = "pending"   // estado inicial obligatorio
	SaleStatusPaid      SaleStatus = "paid"
	SaleStatusDelivered SaleStatus = "delivered" // terminal
	SaleStatusCanceled  SaleStatus = "canceled"  // terminal, revierte inventario
)

// Valid reporta si el valor pertenece al conjunto cerrado de estados.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusPaid, SaleStatusDelivered, SaleStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reporta si el estado no admite más transiciones ni ediciones.
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusDelivered || s == SaleStatusCanceled
}

// CanTransitionTo reporta si la máquina de estados permite pasar de s a next.
// pending y paid se mueven libremente entre sí y hacia los terminales;
// delivered y canceled no salen de su estado.
func (s SaleStatus) CanTransitionTo(next SaleStatus) bool {
	if s.IsTerminal() || !next.Valid() {
		return false
	}
	switch s {
	case SaleStatusPending:
		return next == SaleStatusPaid || next == SaleStatusDelivered || next == SaleStatusCanceled
	case SaleStatusPaid:
		return next == SaleStatusPending || next == SaleStatusDelivered || next == SaleStatusCanceled
	}
	return false
}

// SaleItem es una línea de venta embebida en Sale (no se persiste aparte).
// Nombre, precio unitario y subtotal son snapshots calculados al validar la
// venta a partir del catálogo, nunca vienen del cliente.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// NewSaleItem construye la línea con los snapshots del producto:
// dado (producto, cantidad) produce {nombre, precio unitario, subtotal}.
func NewSaleItem(product *Product, quantity int64) SaleItem {
	return SaleItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(quantity)),
	}
}

// Sale representa una venta con sus líneas embebidas.
type Sale struct {
	ID           string
	CustomerID   string
	CustomerName string // snapshot del cliente al crear
	SaleDate     time.Time
	Status       SaleStatus
	Total        decimal.Decimal // derivado, suma de subtotales
	Items        []SaleItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ComputeTotal devuelve la suma de los subtotales de las líneas.
func ComputeTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
