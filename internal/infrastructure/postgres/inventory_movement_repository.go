package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El ledger es solo-inserción: acá no hay Update ni Delete.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, product_name, sale_id, type, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	saleID := (*string)(nil)
	if movement.SaleID != "" {
		saleID = &movement.SaleID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.ProductName, saleID,
		string(movement.Type), movement.Quantity, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, product_name, sale_id, type, quantity, created_at
		FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	var saleID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.ProductName, &saleID, &m.Type, &m.Quantity, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if saleID != nil {
		m.SaleID = *saleID
	}
	return &m, nil
}

// List lista el ledger completo, más reciente primero.
func (r *InventoryMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, product_name, sale_id, type, quantity, created_at
		FROM inventory_movements
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

// ListByProduct lista los movimientos de un producto, más reciente primero.
func (r *InventoryMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, product_name, sale_id, type, quantity, created_at
		FROM inventory_movements WHERE product_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return scanMovements(rows)
}

// ListBySale lista los movimientos de una venta en orden de inserción;
// movementType filtra si no es vacío. La cancelación lo usa para saber qué
// revertir, por eso acá no hay paginación.
func (r *InventoryMovementRepo) ListBySale(saleID string, movementType entity.MovementType) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, product_name, sale_id, type, quantity, created_at
		FROM inventory_movements WHERE sale_id = $1`
	args := []any{saleID}
	if movementType != "" {
		query += " AND type = $2"
		args = append(args, string(movementType))
	}
	query += " ORDER BY created_at, id"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by sale: %w", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var saleID *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &saleID, &m.Type, &m.Quantity, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if saleID != nil {
			m.SaleID = *saleID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
