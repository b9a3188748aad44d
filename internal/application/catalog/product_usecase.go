package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Las existencias nunca se editan por
// acá: crear un producto inicializa su fila de stock en cero y de ahí en
// adelante solo los movimientos del ledger la ajustan.
type ProductUseCase struct {
	txRunner TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create valida el producto y lo persiste junto con su fila de existencias en
// cero dentro de una transacción. El nombre es único en el catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)

	verr := domain.NewValidationError()
	if name == "" {
		verr.Add("name", "es obligatorio")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "no puede ser negativo")
	}
	um := entity.UnitMeasure(in.UnitMeasure)
	if in.UnitMeasure == "" {
		um = entity.UnitMeasureUnit
	} else if !um.Valid() {
		verr.Add("unit_measure", "debe ser weight o unit")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		UnitMeasure: um,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Producto y fila de existencias nacen juntos o ninguno
	err = uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return stockRepo.Init(product.ID)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica cambios parciales; los campos nil se dejan como están.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	verr := domain.NewValidationError()
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			verr.Add("name", "es obligatorio")
		} else {
			product.Name = name
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			verr.Add("price", "no puede ser negativo")
		} else {
			product.Price = *in.Price
		}
	}
	if in.UnitMeasure != nil {
		um := entity.UnitMeasure(*in.UnitMeasure)
		if !um.Valid() {
			verr.Add("unit_measure", "debe ser weight o unit")
		} else {
			product.UnitMeasure = um
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto y, por cascada, su fila de existencias. Los
// movimientos del ledger que lo referencian quedan como registro histórico.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List busca por nombre sin distinguir mayúsculas ni acentos ("penedès" y
// "Penedes" encuentran lo mismo). Con search vacío lista todo el catálogo.
func (uc *ProductUseCase) List(ctx context.Context, search string, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	products, err := uc.repo.List(strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		UnitMeasure: string(p.UnitMeasure),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
