package repository

import "github.com/jhoicas/vinoteca-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale.
// Las líneas viajan embebidas en la venta; no se persisten aparte.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	// List filtra por estado si status no es vacío; ordena por fecha descendente.
	List(status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error)
}
