package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

// UseCase flujo de compras: crear (PENDING, sin efecto en stock), recibir
// (incrementa stock y registra un ENTRY por línea, todo o nada) y cancelar
// (prohibido una vez RECEIVED).
type UseCase struct {
	txRunner      TxRunner
	purchaseRepo  repository.PurchaseRepository
	supplierRepo  repository.SupplierRepository
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// Create crea una orden de compra en estado PENDING. Recalcula los totales de
// cada línea (subtotal = costo×cantidad, IVA = subtotal×tasa/100) y los suma a
// la cabecera. No toca stock.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || in.UserID == "" || in.Number == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.purchaseRepo.ExistsByNumber(in.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("ya existe una compra con el número %s: %w", in.Number, domain.ErrDuplicate)
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %s: %w", in.SupplierID, domain.ErrNotFound)
	}
	if !supplier.IsActive() {
		return nil, fmt.Errorf("el proveedor no está activo: %w", domain.ErrBusinessRule)
	}

	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", in.UserID, domain.ErrNotFound)
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		UserID:     in.UserID,
		Number:     in.Number,
		OrderDate:  in.OrderDate,
		Status:     entity.PurchaseStatusPending,
		Notes:      in.Notes,
		CreatedAt:  now,
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}

	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, lineReq := range in.Lines {
		if lineReq.Quantity < 1 || !lineReq.UnitCost.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(lineReq.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", lineReq.ProductID, domain.ErrNotFound)
		}
		warehouse, err := uc.warehouseRepo.GetByID(lineReq.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, fmt.Errorf("bodega %s: %w", lineReq.WarehouseID, domain.ErrNotFound)
		}
		if !warehouse.IsActive() {
			return nil, fmt.Errorf("la bodega %s no está activa: %w", warehouse.Name, domain.ErrBusinessRule)
		}

		line := entity.PurchaseLine{
			ID:          uuid.New().String(),
			ProductID:   lineReq.ProductID,
			WarehouseID: lineReq.WarehouseID,
			Quantity:    lineReq.Quantity,
			UnitCost:    lineReq.UnitCost,
		}
		line.ComputeTotals(product.TaxRate)
		order.Lines = append(order.Lines, line)

		subtotal = subtotal.Add(line.Subtotal)
		taxTotal = taxTotal.Add(line.TaxTotal)
	}
	order.Subtotal = subtotal
	order.TaxTotal = taxTotal
	order.Total = subtotal.Add(taxTotal)

	// Cabecera y líneas en la misma transacción
	err = uc.txRunner.RunPurchase(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		return purchaseRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("purchase_id", order.ID).Str("number", order.Number).Msg("compra creada")
	return uc.toResponse(order)
}

// Receive recibe una compra PENDING: por cada línea carga o crea el nivel de
// stock (0/0), lo incrementa bajo bloqueo de fila y registra un movimiento
// ENTRY con cantidades antes/después. Todo dentro de una transacción.
func (uc *UseCase) Receive(ctx context.Context, orderID string) (*dto.PurchaseResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		var err error
		order, err = purchaseRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("compra %s: %w", orderID, domain.ErrNotFound)
		}
		if order.Status != entity.PurchaseStatusPending {
			return fmt.Errorf("solo se pueden recibir compras en estado PENDING: %w", domain.ErrBusinessRule)
		}

		now := time.Now()
		for _, line := range order.Lines {
			level, err := stockRepo.GetForUpdate(line.ProductID, line.WarehouseID)
			if err != nil {
				return err
			}
			before := level.Quantity
			level.Quantity = before + line.Quantity
			level.UpdatedAt = now
			if err := stockRepo.Upsert(level); err != nil {
				return err
			}
			mov := &entity.Movement{
				ID:             uuid.New().String(),
				ProductID:      line.ProductID,
				WarehouseID:    line.WarehouseID,
				Type:           entity.MovementTypeEntry,
				QuantityBefore: before,
				QuantityAfter:  level.Quantity,
				Reason:         "Compra recibida - Número: " + order.Number,
				Reference:      order.Number,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		order.Status = entity.PurchaseStatusReceived
		return purchaseRepo.UpdateStatus(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("purchase_id", order.ID).Msg("compra recibida")
	return uc.toResponse(order)
}

// Cancel cancela una compra que aún no ha sido recibida. No toca stock: una
// compra PENDING nunca lo tocó. El motivo, si viene, se anexa a las notas.
func (uc *UseCase) Cancel(ctx context.Context, orderID, reason string) (*dto.PurchaseResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.RunPurchase(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		var err error
		order, err = purchaseRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("compra %s: %w", orderID, domain.ErrNotFound)
		}
		if order.Status == entity.PurchaseStatusReceived {
			return fmt.Errorf("no se puede cancelar una compra ya recibida: %w", domain.ErrBusinessRule)
		}

		order.Status = entity.PurchaseStatusCancelled
		if reason != "" {
			if order.Notes != "" {
				order.Notes += "\n"
			}
			order.Notes += "CANCELADA: " + reason
		}
		return purchaseRepo.UpdateStatus(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("purchase_id", order.ID).Msg("compra cancelada")
	return uc.toResponse(order)
}

// GetByID obtiene una compra con su vista compuesta.
func (uc *UseCase) GetByID(orderID string) (*dto.PurchaseResponse, error) {
	order, err := uc.purchaseRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("compra %s: %w", orderID, domain.ErrNotFound)
	}
	return uc.toResponse(order)
}

// List lista todas las compras.
func (uc *UseCase) List(limit, offset int) ([]*dto.PurchaseResponse, error) {
	orders, err := uc.purchaseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

// ListBySupplier lista compras de un proveedor.
func (uc *UseCase) ListBySupplier(supplierID string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	orders, err := uc.purchaseRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

// ListByStatus lista compras por estado.
func (uc *UseCase) ListByStatus(status string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	switch status {
	case entity.PurchaseStatusPending, entity.PurchaseStatusReceived, entity.PurchaseStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.purchaseRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

// ListByDateRange lista compras en un rango de fechas.
func (uc *UseCase) ListByDateRange(from, to time.Time, limit, offset int) ([]*dto.PurchaseResponse, error) {
	orders, err := uc.purchaseRepo.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(orders)
}

// toResponse arma la vista de lectura: carga proveedor, usuario y las
// referencias de cada línea fuera del camino de escritura.
func (uc *UseCase) toResponse(order *entity.PurchaseOrder) (*dto.PurchaseResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(order.SupplierID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(order.UserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PurchaseResponse{
		ID:        order.ID,
		Number:    order.Number,
		OrderDate: order.OrderDate,
		Subtotal:  order.Subtotal,
		TaxTotal:  order.TaxTotal,
		Total:     order.Total,
		Status:    order.Status,
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt,
	}
	if supplier != nil {
		resp.Supplier = dto.SupplierBasicResponse{ID: supplier.ID, Name: supplier.Name}
	}
	if user != nil {
		resp.User = dto.UserBasicResponse{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
	}

	for _, line := range order.Lines {
		lineResp := dto.PurchaseLineResponse{
			ID:       line.ID,
			Quantity: line.Quantity,
			UnitCost: line.UnitCost,
			Subtotal: line.Subtotal,
			TaxTotal: line.TaxTotal,
			Total:    line.Total,
		}
		if product, err := uc.productRepo.GetByID(line.ProductID); err == nil && product != nil {
			lineResp.Product = dto.ProductBasicResponse{ID: product.ID, Code: product.Code, Name: product.Name, TaxRate: product.TaxRate}
		}
		if warehouse, err := uc.warehouseRepo.GetByID(line.WarehouseID); err == nil && warehouse != nil {
			lineResp.Warehouse = dto.WarehouseBasicResponse{ID: warehouse.ID, Name: warehouse.Name}
		}
		resp.Lines = append(resp.Lines, lineResp)
	}
	return resp, nil
}

func (uc *UseCase) toResponses(orders []*entity.PurchaseOrder) ([]*dto.PurchaseResponse, error) {
	out := make([]*dto.PurchaseResponse, 0, len(orders))
	for _, order := range orders {
		resp, err := uc.toResponse(order)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
