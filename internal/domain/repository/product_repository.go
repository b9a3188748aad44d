package repository

import "github.com/jhoicas/vinoteca-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List filtra por subcadena sobre el nombre normalizado (sin acentos);
	// search vacío lista todo con paginación.
	List(search string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
