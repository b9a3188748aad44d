package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/application/inventory"
	"github.com/jhoicas/vinoteca-api/internal/application/sales"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales     map[string]*entity.Sale
	updateErr error
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error { r.sales[s.ID] = s; return nil }

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	// Copia para que el caller no mute lo persistido sin pasar por Update
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	return &cp, nil
}

func (r *fakeSaleRepo) Update(s *entity.Sale) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) List(status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

func (r *fakeCustomerRepo) Update(c *entity.Customer) error { r.customers[c.ID] = c; return nil }

func (r *fakeCustomerRepo) Delete(id string) error { delete(r.customers, id); return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListBySale(saleID string, movementType entity.MovementType) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.SaleID != saleID {
			continue
		}
		if movementType != "" && m.Type != movementType {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeStockRepo struct {
	quantities map[string]int64
	adjustErr  error
}

func (r *fakeStockRepo) Init(productID string) error {
	r.quantities[productID] = 0
	return nil
}

func (r *fakeStockRepo) Get(productID string) (*entity.Stock, error) {
	q, ok := r.quantities[productID]
	if !ok {
		return nil, nil
	}
	return &entity.Stock{ProductID: productID, Quantity: q}, nil
}

func (r *fakeStockRepo) AdjustQuantity(productID string, delta int64) (int64, error) {
	if r.adjustErr != nil {
		return 0, r.adjustErr
	}
	if _, ok := r.quantities[productID]; !ok {
		return 0, domain.ErrNotFound
	}
	r.quantities[productID] += delta
	return r.quantities[productID], nil
}

func (r *fakeStockRepo) ListLevels(limit, offset int) ([]*repository.StockLevel, error) {
	return nil, nil
}

// memTxRunner pasa los fakes directo al callback; el commit/rollback real lo
// cubren los tests de integración contra Postgres.
type memTxRunner struct {
	saleRepo  *fakeSaleRepo
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
}

func (r *memTxRunner) RunSales(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return fn(r.saleRepo, r.movRepo, r.stockRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *sales.SaleUseCase
	saleRepo  *fakeSaleRepo
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
}

func newFixture() *fixture {
	f := &fixture{
		saleRepo:  &fakeSaleRepo{sales: make(map[string]*entity.Sale)},
		movRepo:   &fakeMovementRepo{},
		stockRepo: &fakeStockRepo{quantities: make(map[string]int64)},
		products:  &fakeProductRepo{products: make(map[string]*entity.Product)},
		customers: &fakeCustomerRepo{customers: make(map[string]*entity.Customer)},
	}
	tx := &memTxRunner{saleRepo: f.saleRepo, movRepo: f.movRepo, stockRepo: f.stockRepo}
	// ApplyInTx opera solo con los repos que recibe por parámetro; las
	// dependencias del constructor no se usan en ese camino.
	applier := inventory.NewRegisterMovementUseCase(nil, nil, nil, nil)
	f.uc = sales.NewSaleUseCase(tx, applier, f.saleRepo, f.customers, f.products)
	return f
}

func (f *fixture) seedCustomer(id, name string) *entity.Customer {
	c := &entity.Customer{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.customers.customers[id] = c
	return c
}

func (f *fixture) seedProduct(id, name, price string, stock int64) *entity.Product {
	p := &entity.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		UnitMeasure: entity.UnitMeasureUnit,
	}
	f.products.products[id] = p
	f.stockRepo.quantities[id] = stock
	return p
}

// createSale crea una venta válida de referencia: 12 Malbec + 6 Espumante
// para el cliente c-1.
func (f *fixture) createSale(t *testing.T) *dto.SaleResponse {
	t.Helper()
	f.seedCustomer("c-1", "Bodegón El Tano")
	f.seedProduct("p-1", "Malbec Reserva 2021", "8500.00", 48)
	f.seedProduct("p-2", "Espumante Brut Nature", "6900.00", 20)

	resp, err := f.uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c-1",
		SaleDate:   "2026-08-20",
		Items: []dto.SaleItemRequest{
			{ProductID: "p-1", Quantity: 12},
			{ProductID: "p-2", Quantity: 6},
		},
	})
	require.NoError(t, err, "la venta de referencia debe crearse")
	return resp
}
