package repository

import "github.com/jhoicas/vinoteca-api/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia del ledger de
// movimientos. El ledger es append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	List(limit, offset int) ([]*entity.InventoryMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	// ListBySale devuelve los movimientos originados por una venta, filtrando
	// por tipo si movementType no es vacío. Se usa para emitir los reversos.
	ListBySale(saleID string, movementType entity.MovementType) ([]*entity.InventoryMovement, error)
}
