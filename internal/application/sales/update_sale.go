package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vinoteca-api/internal/application/dto"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// UpdateSale aplica cambios de atributos y transiciones de estado sobre una
// venta viva. Las ventas en estado terminal (delivered, canceled) no admiten
// ninguna edición; re-cancelar una venta cancelada también se rechaza. La
// transición a canceled emite los reversos de inventario en la misma
// transacción que persiste el cambio de estado.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	if sale.Status.IsTerminal() {
		return nil, &domain.StateError{Status: string(sale.Status)}
	}

	// Transición de estado pedida, validada contra la máquina de estados
	targetStatus := sale.Status
	if in.Status != nil && entity.SaleStatus(*in.Status) != sale.Status {
		next := entity.SaleStatus(*in.Status)
		if !next.Valid() {
			verr := domain.NewValidationError()
			verr.Add("status", "debe ser pending, paid, delivered o canceled")
			return nil, verr
		}
		if !sale.Status.CanTransitionTo(next) {
			return nil, &domain.StateError{Status: string(sale.Status)}
		}
		targetStatus = next
	}

	// Atributos editables, con las mismas reglas que la creación
	verr := domain.NewValidationError()
	if in.CustomerID != nil {
		if *in.CustomerID == "" {
			verr.Add("customer_id", "es obligatorio")
		} else {
			customer, err := uc.customerRepo.GetByID(*in.CustomerID)
			if err != nil {
				return nil, err
			}
			if customer == nil {
				verr.Add("customer_id", "cliente no encontrado")
			} else {
				sale.CustomerID = customer.ID
				sale.CustomerName = customer.Name
			}
		}
	}
	if in.SaleDate != nil {
		d, err := time.Parse("2006-01-02", *in.SaleDate)
		if err != nil {
			verr.Add("sale_date", "formato esperado YYYY-MM-DD")
		} else {
			sale.SaleDate = d
		}
	}
	if in.Items != nil {
		if len(*in.Items) == 0 {
			verr.Add("items", "debe incluir al menos una línea")
		} else {
			items, err := uc.buildItems(*in.Items, verr)
			if err != nil {
				return nil, err
			}
			if !verr.HasErrors() {
				// Reemplazar líneas recalcula snapshots y total; los
				// movimientos emitidos al crear la venta no se tocan.
				sale.Items = items
				sale.Total = entity.ComputeTotal(items)
			}
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	sale.Status = targetStatus
	sale.UpdatedAt = time.Now()

	if targetStatus == entity.SaleStatusCanceled {
		return uc.cancelSale(ctx, sale)
	}

	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
	) error {
		return saleRepo.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// cancelSale emite un sale_reversal por cada movimiento sale de la venta y
// persiste el estado canceled, todo en una transacción: si algo falla no
// quedan ni reversos parciales ni una venta cancelada sin reversos. Los
// reversos devuelven las existencias; el historial completo queda en el ledger.
func (uc *SaleUseCase) cancelSale(ctx context.Context, sale *entity.Sale) (*dto.SaleResponse, error) {
	now := time.Now()
	err := uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		originals, err := movRepo.ListBySale(sale.ID, entity.MovementSale)
		if err != nil {
			return err
		}
		for _, orig := range originals {
			reversal := &entity.InventoryMovement{
				ID:          uuid.New().String(),
				ProductID:   orig.ProductID,
				ProductName: orig.ProductName,
				SaleID:      sale.ID,
				Type:        entity.MovementSaleReversal,
				Quantity:    orig.Quantity,
				CreatedAt:   now,
			}
			if err := uc.inventory.ApplyInTx(movRepo, stockRepo, reversal); err != nil {
				return err
			}
		}
		return saleRepo.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}
