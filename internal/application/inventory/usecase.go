package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

// UseCase consultas de stock y operaciones directas sobre el inventario
// (creación de nivel inicial y ajuste manual). Las mutaciones pasan por el
// TxRunner con bloqueo de fila, igual que los flujos de compra/venta/traslado.
type UseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockLevelRepository
	movRepo       repository.MovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// CreateLevel crea el inventario inicial de un producto en una bodega.
// Falla si ya existe nivel para el par; registra un movimiento ENTRY inicial.
func (uc *UseCase) CreateLevel(ctx context.Context, in dto.CreateStockLevelRequest) (*dto.StockLevelResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity < 0 || in.ReorderThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}

	existing, err := uc.stockRepo.Get(in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe inventario para este producto en la bodega: %w", domain.ErrDuplicate)
	}

	now := time.Now()
	level := &entity.StockLevel{
		ProductID:        in.ProductID,
		WarehouseID:      in.WarehouseID,
		Quantity:         in.Quantity,
		ReorderThreshold: in.ReorderThreshold,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockLevelRepository, movRepo repository.MovementRepository) error {
		if err := stockRepo.Upsert(level); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			WarehouseID:    in.WarehouseID,
			Type:           entity.MovementTypeEntry,
			QuantityBefore: 0,
			QuantityAfter:  in.Quantity,
			Reason:         "Inventario inicial",
			Reference:      "INV-INICIAL-" + in.ProductID,
			CreatedAt:      now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toStockLevelResponse(level), nil
}

// Adjust aplica un ajuste manual (delta firmado) con bloqueo de fila.
// Rechaza ajustes que dejarían la cantidad negativa.
func (uc *UseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (*dto.StockLevelResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Quantity == 0 || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", in.WarehouseID).
		Int("quantity", in.Quantity).
		Msg("ajustando inventario")

	var result *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockLevelRepository, movRepo repository.MovementRepository) error {
		level, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		before := level.Quantity
		after := before + in.Quantity
		if after < 0 {
			return fmt.Errorf("el ajuste resultaría en cantidad negativa: %w", domain.ErrBusinessRule)
		}
		now := time.Now()
		level.Quantity = after
		level.UpdatedAt = now
		if err := stockRepo.Upsert(level); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			WarehouseID:    in.WarehouseID,
			Type:           entity.MovementTypeAdjustment,
			QuantityBefore: before,
			QuantityAfter:  after,
			Reason:         in.Reason,
			Reference:      fmt.Sprintf("AJUSTE-%s", in.ProductID),
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockLevelResponse(result), nil
}

// GetLevel consulta el nivel actual de un producto en una bodega.
func (uc *UseCase) GetLevel(productID, warehouseID string) (*dto.StockLevelResponse, error) {
	level, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	return toStockLevelResponse(level), nil
}

// ListByWarehouse lista los niveles de una bodega.
func (uc *UseCase) ListByWarehouse(warehouseID string, limit, offset int) ([]*dto.StockLevelResponse, error) {
	levels, err := uc.stockRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, toStockLevelResponse(l))
	}
	return out, nil
}

// ListBelowThreshold lista los niveles en o por debajo del stock mínimo.
// warehouseID vacío consulta todas las bodegas.
func (uc *UseCase) ListBelowThreshold(warehouseID string) ([]*dto.StockLevelResponse, error) {
	levels, err := uc.stockRepo.ListBelowThreshold(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, toStockLevelResponse(l))
	}
	return out, nil
}

// ListMovements consulta el historial de movimientos según los filtros.
// Se resuelve por prioridad: producto+bodega, producto, bodega, tipo.
func (uc *UseCase) ListMovements(in dto.MovementFilter) ([]*dto.MovementResponse, error) {
	in.DefaultPage()
	var (
		movs []*entity.Movement
		err  error
	)
	switch {
	case in.ProductID != "" && in.WarehouseID != "":
		movs, err = uc.movRepo.ListByProductAndWarehouse(in.ProductID, in.WarehouseID, in.Limit, in.Offset)
	case in.ProductID != "":
		movs, err = uc.movRepo.ListByProduct(in.ProductID, in.From, in.To, in.Limit, in.Offset)
	case in.WarehouseID != "":
		movs, err = uc.movRepo.ListByWarehouse(in.WarehouseID, in.From, in.To, in.Limit, in.Offset)
	case in.Type != "":
		if !entity.ValidMovementType(in.Type) {
			return nil, domain.ErrInvalidInput
		}
		movs, err = uc.movRepo.ListByType(in.Type, in.From, in.To, in.Limit, in.Offset)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func (uc *UseCase) checkRefs(productID, warehouseID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}
	return nil
}

func toStockLevelResponse(l *entity.StockLevel) *dto.StockLevelResponse {
	return &dto.StockLevelResponse{
		ProductID:        l.ProductID,
		WarehouseID:      l.WarehouseID,
		Quantity:         l.Quantity,
		ReorderThreshold: l.ReorderThreshold,
		BelowThreshold:   l.BelowThreshold(),
		UpdatedAt:        l.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		Type:           m.Type,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Reference:      m.Reference,
		CreatedAt:      m.CreatedAt,
	}
}
