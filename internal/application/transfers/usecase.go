package transfers

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

// UseCase traslado en dos fases entre bodegas:
// Create valida (pre-chequeo, sin reserva) y deja el traslado PENDING;
// Process re-valida bajo bloqueo de fila, debita el origen y pasa a IN_TRANSIT;
// Receive acredita el destino y cierra en RECEIVED. Por producto, lo debitado
// en Process es exactamente lo acreditado en Receive.
type UseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	stockRepo     repository.StockLevelRepository
	warehouseRepo repository.WarehouseRepository
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	stockRepo repository.StockLevelRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		log:           log,
	}
}

// Create solicita un traslado. Verifica bodegas distintas y existentes,
// usuario y productos, y que el origen tenga stock suficiente por línea.
// El chequeo de stock es solo informativo: no reserva ni bloquea; Process
// vuelve a validar dentro de su transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.SourceID == "" || in.DestinationID == "" || in.UserID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceID == in.DestinationID {
		return nil, fmt.Errorf("la bodega de origen y destino no pueden ser la misma: %w", domain.ErrBusinessRule)
	}

	uc.log.Info().Str("source", in.SourceID).Str("destination", in.DestinationID).Msg("iniciando creación de traslado")

	source, err := uc.warehouseRepo.GetByID(in.SourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("bodega origen %s: %w", in.SourceID, domain.ErrNotFound)
	}
	destination, err := uc.warehouseRepo.GetByID(in.DestinationID)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, fmt.Errorf("bodega destino %s: %w", in.DestinationID, domain.ErrNotFound)
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", in.UserID, domain.ErrNotFound)
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:            uuid.New().String(),
		SourceID:      in.SourceID,
		DestinationID: in.DestinationID,
		UserID:        in.UserID,
		Notes:         in.Notes,
		Status:        entity.TransferStatusPending,
		RequestedAt:   now,
	}

	for _, lineReq := range in.Lines {
		if lineReq.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(lineReq.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", lineReq.ProductID, domain.ErrNotFound)
		}

		// Pre-chequeo de disponibilidad en el origen
		level, err := uc.stockRepo.Get(lineReq.ProductID, in.SourceID)
		if err != nil {
			return nil, err
		}
		if level == nil {
			return nil, fmt.Errorf("no hay inventario en bodega origen para %s: %w", product.Name, domain.ErrInsufficientStock)
		}
		if level.Quantity < lineReq.Quantity {
			return nil, fmt.Errorf("stock insuficiente en bodega origen para %s (disponible %d, solicitado %d): %w",
				product.Name, level.Quantity, lineReq.Quantity, domain.ErrInsufficientStock)
		}

		transfer.Lines = append(transfer.Lines, entity.TransferLine{
			ID:        uuid.New().String(),
			ProductID: lineReq.ProductID,
			Quantity:  lineReq.Quantity,
		})
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("transfer_id", transfer.ID).Msg("traslado creado")
	return uc.toResponse(transfer)
}

// Process debita el origen: re-valida stock por línea bajo bloqueo de fila
// (defensa contra carreras desde el pre-chequeo de Create), descuenta y
// registra un movimiento TRANSFER por línea. Sin debitos parciales: cualquier
// línea insuficiente aborta toda la operación. Deja el traslado IN_TRANSIT.
func (uc *UseCase) Process(ctx context.Context, transferID string) (*dto.TransferResponse, error) {
	uc.log.Info().Str("transfer_id", transferID).Msg("procesando traslado")

	var transfer *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		transfer, err = transferRepo.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}
		if transfer.Status != entity.TransferStatusPending {
			return fmt.Errorf("solo se pueden procesar traslados en estado PENDING: %w", domain.ErrBusinessRule)
		}

		now := time.Now()
		for _, line := range transfer.Lines {
			level, err := stockRepo.GetForUpdate(line.ProductID, transfer.SourceID)
			if err != nil {
				return err
			}
			if level.Quantity < line.Quantity {
				return fmt.Errorf("stock insuficiente en bodega origen para el producto %s: %w",
					line.ProductID, domain.ErrInsufficientStock)
			}
			before := level.Quantity
			level.Quantity = before - line.Quantity
			level.UpdatedAt = now
			if err := stockRepo.Upsert(level); err != nil {
				return err
			}
			mov := &entity.Movement{
				ID:             uuid.New().String(),
				ProductID:      line.ProductID,
				WarehouseID:    transfer.SourceID,
				Type:           entity.MovementTypeTransfer,
				QuantityBefore: before,
				QuantityAfter:  level.Quantity,
				Reason:         "Traslado salida - ID: " + transfer.ID,
				Reference:      "TRANS-" + transfer.ID,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusInTransit
		return transferRepo.UpdateStatus(transfer)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("transfer_id", transferID).Msg("traslado en tránsito")
	return uc.toResponse(transfer)
}

// Receive acredita el destino: carga o crea el nivel (0/0), suma la cantidad y
// registra un movimiento TRANSFER por línea. Fija la fecha de recibo y deja el
// traslado RECEIVED.
func (uc *UseCase) Receive(ctx context.Context, transferID string) (*dto.TransferResponse, error) {
	uc.log.Info().Str("transfer_id", transferID).Msg("recibiendo traslado")

	var transfer *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		transfer, err = transferRepo.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}
		if transfer.Status != entity.TransferStatusInTransit {
			return fmt.Errorf("solo se pueden recibir traslados en estado IN_TRANSIT: %w", domain.ErrBusinessRule)
		}

		now := time.Now()
		for _, line := range transfer.Lines {
			level, err := stockRepo.GetForUpdate(line.ProductID, transfer.DestinationID)
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
				WarehouseID:    transfer.DestinationID,
				Type:           entity.MovementTypeTransfer,
				QuantityBefore: before,
				QuantityAfter:  level.Quantity,
				Reason:         "Traslado entrada - ID: " + transfer.ID,
				Reference:      "TRANS-" + transfer.ID,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusReceived
		transfer.ReceivedAt = &now
		return transferRepo.UpdateStatus(transfer)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("transfer_id", transferID).Msg("traslado recibido")
	return uc.toResponse(transfer)
}

// GetByID obtiene un traslado con su vista compuesta.
func (uc *UseCase) GetByID(transferID string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
	}
	return uc.toResponse(transfer)
}

// List lista todos los traslados.
func (uc *UseCase) List(limit, offset int) ([]*dto.TransferResponse, error) {
	transfers, err := uc.transferRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(transfers)
}

// ListPending lista los traslados pendientes.
func (uc *UseCase) ListPending(limit, offset int) ([]*dto.TransferResponse, error) {
	transfers, err := uc.transferRepo.ListByStatus(entity.TransferStatusPending, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(transfers)
}

func (uc *UseCase) toResponse(transfer *entity.Transfer) (*dto.TransferResponse, error) {
	resp := &dto.TransferResponse{
		ID:          transfer.ID,
		Status:      transfer.Status,
		Notes:       transfer.Notes,
		RequestedAt: transfer.RequestedAt,
		ReceivedAt:  transfer.ReceivedAt,
	}
	if source, err := uc.warehouseRepo.GetByID(transfer.SourceID); err == nil && source != nil {
		resp.Source = dto.WarehouseBasicResponse{ID: source.ID, Name: source.Name}
	}
	if destination, err := uc.warehouseRepo.GetByID(transfer.DestinationID); err == nil && destination != nil {
		resp.Destination = dto.WarehouseBasicResponse{ID: destination.ID, Name: destination.Name}
	}
	if user, err := uc.userRepo.GetByID(transfer.UserID); err == nil && user != nil {
		resp.User = dto.UserBasicResponse{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
	}
	for _, line := range transfer.Lines {
		lineResp := dto.TransferLineResponse{ID: line.ID, Quantity: line.Quantity}
		if product, err := uc.productRepo.GetByID(line.ProductID); err == nil && product != nil {
			lineResp.Product = dto.ProductBasicResponse{ID: product.ID, Code: product.Code, Name: product.Name, TaxRate: product.TaxRate}
		}
		resp.Lines = append(resp.Lines, lineResp)
	}
	return resp, nil
}

func (uc *UseCase) toResponses(transfers []*entity.Transfer) ([]*dto.TransferResponse, error) {
	out := make([]*dto.TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		resp, err := uc.toResponse(transfer)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
