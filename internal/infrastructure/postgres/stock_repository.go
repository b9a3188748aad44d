package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Init crea la fila de existencias en cero para un producto recién creado.
func (r *StockRepo) Init(productID string) error {
	query := `
		INSERT INTO stocks (product_id, quantity, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (product_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, productID)
	if err != nil {
		return fmt.Errorf("init stock: %w", err)
	}
	return nil
}

// Get obtiene las existencias actuales de un producto.
func (r *StockRepo) Get(productID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, quantity, updated_at
		FROM stocks WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// AdjustQuantity suma delta (negativo resta) y retorna la cantidad resultante.
// El UPDATE relativo se serializa en la fila: dos ajustes concurrentes sobre el
// mismo producto se aplican ambos, ninguno pisa al otro. ErrNotFound si el
// producto no tiene fila de existencias. La cantidad puede quedar negativa.
func (r *StockRepo) AdjustQuantity(productID string, delta int64) (int64, error) {
	query := `
		UPDATE stocks SET quantity = quantity + $2, updated_at = now()
		WHERE product_id = $1
		RETURNING quantity`
	var quantity int64
	err := r.q.QueryRow(context.Background(), query, productID, delta).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return quantity, nil
}

// ListLevels lista existencias con nombre y unidad del producto.
func (r *StockRepo) ListLevels(limit, offset int) ([]*repository.StockLevel, error) {
	query := `
		SELECT s.product_id, p.name, p.unit_measure, s.quantity, s.updated_at
		FROM stocks s
		JOIN products p ON p.id = s.product_id
		ORDER BY p.name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockLevel
	for rows.Next() {
		var lvl repository.StockLevel
		if err := rows.Scan(&lvl.ProductID, &lvl.ProductName, &lvl.UnitMeasure, &lvl.Quantity, &lvl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &lvl)
	}
	return list, rows.Err()
}
