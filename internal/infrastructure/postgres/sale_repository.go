package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viajan como JSONB en la columna items: son snapshots congelados,
// no filas vivas que haya que mantener en sincronía con el catálogo.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta con sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales (id, customer_id, customer_name, sale_date, status, total, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.CustomerName, sale.SaleDate,
		string(sale.Status), sale.Total, itemsJSON, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, customer_id, customer_name, sale_date, status, total, items, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var itemsJSON []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CustomerID, &s.CustomerName, &s.SaleDate, &s.Status, &s.Total,
		&itemsJSON, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	return &s, nil
}

// Update actualiza la venta completa (atributos, estado y líneas).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		UPDATE sales
		SET customer_id = $2, customer_name = $3, sale_date = $4, status = $5, total = $6, items = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.CustomerName, sale.SaleDate,
		string(sale.Status), sale.Total, itemsJSON, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas, más recientes primero; status filtra si no es vacío.
func (r *SaleRepo) List(status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, customer_id, customer_name, sale_date, status, total, items, created_at, updated_at
		FROM sales`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, string(status))
		pos++
	}
	query += fmt.Sprintf(" ORDER BY sale_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var itemsJSON []byte
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.CustomerName, &s.SaleDate, &s.Status, &s.Total,
			&itemsJSON, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
			return nil, fmt.Errorf("unmarshal sale items: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
