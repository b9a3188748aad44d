package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// SaleUseCase crea y muta ventas aplicando sus consecuencias de inventario en
// la misma transacción que persiste la venta.
type SaleUseCase struct {
	txRunner     TxRunner
	inventory    InventoryApplier
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	inventory InventoryApplier,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		inventory:    inventory,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreateSale valida fuera de la transacción, congela los snapshots de cliente y
// productos, y persiste venta + un movimiento sale por línea + ajustes de
// existencias como unidad atómica. Toda venta nace pending; cualquier estado
// que mande el caller se ignora.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// 1) Validación y resolución de snapshots, todo solo lectura
	verr := domain.NewValidationError()

	var customer *entity.Customer
	if in.CustomerID == "" {
		verr.Add("customer_id", "es obligatorio")
	} else {
		var err error
		customer, err = uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			verr.Add("customer_id", "cliente no encontrado")
		}
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != "" {
		d, err := time.Parse("2006-01-02", in.SaleDate)
		if err != nil {
			verr.Add("sale_date", "formato esperado YYYY-MM-DD")
		} else {
			saleDate = d
		}
	}

	if len(in.Items) == 0 {
		verr.Add("items", "debe incluir al menos una línea")
	}
	items, err := uc.buildItems(in.Items, verr)
	if err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	sale := &entity.Sale{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		SaleDate:     saleDate,
		Status:       entity.SaleStatusPending,
		Total:        entity.ComputeTotal(items),
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 2) Venta + movimientos + ajustes, todo o nada
	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			mov := &entity.InventoryMovement{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				SaleID:      sale.ID,
				Type:        entity.MovementSale,
				Quantity:    item.Quantity,
				CreatedAt:   now,
			}
			if err := uc.inventory.ApplyInTx(movRepo, stockRepo, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetSale obtiene una venta por ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas, opcionalmente filtradas por estado.
func (uc *SaleUseCase) ListSales(ctx context.Context, status string, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	st := entity.SaleStatus(status)
	if status != "" && !st.Valid() {
		verr := domain.NewValidationError()
		verr.Add("status", "debe ser pending, paid, delivered o canceled")
		return nil, verr
	}
	sales, err := uc.saleRepo.List(st, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// buildItems resuelve cada línea contra el catálogo y congela los snapshots
// (nombre, precio unitario, subtotal). Un mismo producto no puede repetirse.
// Los errores de validación se acumulan en verr; el error retornado es solo de
// infraestructura.
func (uc *SaleUseCase) buildItems(reqItems []dto.SaleItemRequest, verr *domain.ValidationError) ([]entity.SaleItem, error) {
	seen := make(map[string]bool, len(reqItems))
	dupFlagged := false
	items := make([]entity.SaleItem, 0, len(reqItems))
	for i, it := range reqItems {
		field := fmt.Sprintf("items[%d]", i)
		if it.ProductID == "" {
			verr.Add(field+".product_id", "es obligatorio")
			continue
		}
		if seen[it.ProductID] {
			if !dupFlagged {
				verr.Add("items", "duplicate items found")
				dupFlagged = true
			}
			continue
		}
		seen[it.ProductID] = true
		if it.Quantity <= 0 {
			verr.Add(field+".quantity", "debe ser mayor que cero")
			continue
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			verr.Add(field+".product_id", "producto no encontrado")
			continue
		}
		items = append(items, entity.NewSaleItem(product, it.Quantity))
	}
	return items, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		SaleDate:     s.SaleDate.Format("2006-01-02"),
		Status:       string(s.Status),
		Total:        s.Total,
		Items:        items,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
