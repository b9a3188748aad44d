package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vinoteca-api/internal/domain"
	"github.com/jhoicas/vinoteca-api/internal/domain/entity"
	"github.com/jhoicas/vinoteca-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos del ledger de inventario de forma
// transaccional: la entrada del ledger y el ajuste de existencias se confirman
// juntos o ninguno (Commit/Rollback vía TxRunner).
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
	stockRepo    repository.StockRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		stockRepo:    stockRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento manual del ledger.
// Por la API solo entran purchase (reposición) y sale (venta sin registro);
// sale_reversal lo emite únicamente la cancelación de una venta.
type MovementInputDTO struct {
	ProductID string
	Type      entity.MovementType
	Quantity  int64
}

// Register valida la entrada, arma el movimiento con el snapshot del producto y
// lo aplica dentro de una transacción.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovementInputDTO) (*entity.InventoryMovement, error) {
	// Validación fuera de la tx (solo lectura)
	verr := domain.NewValidationError()
	if input.ProductID == "" {
		verr.Add("product_id", "es obligatorio")
	}
	switch input.Type {
	case entity.MovementPurchase, entity.MovementSale:
	case entity.MovementSaleReversal:
		verr.Add("type", "sale_reversal solo lo emite la cancelación de una venta")
	default:
		verr.Add("type", "debe ser purchase o sale")
	}
	if input.Quantity <= 0 {
		verr.Add("quantity", "debe ser mayor que cero")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        input.Type,
		Quantity:    input.Quantity,
		CreatedAt:   time.Now(),
	}

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		return uc.ApplyInTx(movRepo, stockRepo, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx persiste el movimiento y aplica su delta sobre las existencias
// usando los repositorios del caller (misma transacción). No abre transacción
// propia: la unidad atómica la decide quien llama. Falla con ErrNotFound si el
// producto no tiene fila de existencias. No hay piso en cero: la cantidad puede
// quedar negativa si se sobrevende.
func (uc *RegisterMovementUseCase) ApplyInTx(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	movement *entity.InventoryMovement,
) error {
	if err := movRepo.Create(movement); err != nil {
		return err
	}
	if _, err := stockRepo.AdjustQuantity(movement.ProductID, movement.Delta()); err != nil {
		return err
	}
	return nil
}

// GetMovement obtiene un movimiento por ID.
func (uc *RegisterMovementUseCase) GetMovement(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	mov, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListMovements lista el ledger; productID o saleID filtran si no son vacíos.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID, saleID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	if saleID != "" {
		return uc.movementRepo.ListBySale(saleID, "")
	}
	if productID != "" {
		return uc.movementRepo.ListByProduct(productID, limit, offset)
	}
	return uc.movementRepo.List(limit, offset)
}

// ListLevels lista las existencias actuales con los datos del producto.
func (uc *RegisterMovementUseCase) ListLevels(ctx context.Context, limit, offset int) ([]*repository.StockLevel, error) {
	return uc.stockRepo.ListLevels(limit, offset)
}
