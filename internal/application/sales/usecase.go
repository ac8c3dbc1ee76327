package sales

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

// UseCase flujo de ventas: la creación valida y descuenta stock por línea
// dentro de una sola transacción (todo o nada) y registra un EXIT por línea.
// El estado de pago muta después sin tocar inventario.
type UseCase struct {
	txRunner           TxRunner
	saleRepo           repository.SaleRepository
	customerRepo       repository.CustomerRepository
	userRepo           repository.UserRepository
	productRepo        repository.ProductRepository
	warehouseRepo      repository.WarehouseRepository
	defaultWarehouseID string
	log                *logger.Logger
}

// NewUseCase construye el caso de uso de ventas. defaultWarehouseID se usa
// cuando la petición no indica bodega.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	defaultWarehouseID string,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:           txRunner,
		saleRepo:           saleRepo,
		customerRepo:       customerRepo,
		userRepo:           userRepo,
		productRepo:        productRepo,
		warehouseRepo:      warehouseRepo,
		defaultWarehouseID: defaultWarehouseID,
		log:                log,
	}
}

// Create crea la venta. Por cada línea: producto ACTIVE, stock suficiente en la
// bodega (bloqueo de fila) o se rechaza la venta completa con stock insuficiente,
// descuento del nivel y movimiento EXIT. Total = Σ líneas - descuento, > 0.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || in.UserID == "" || in.InvoiceNumber == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	uc.log.Info().Str("invoice_number", in.InvoiceNumber).Msg("iniciando creación de venta")

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}
	if !customer.IsActive() {
		return nil, fmt.Errorf("el cliente no está activo: %w", domain.ErrBusinessRule)
	}

	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s: %w", in.UserID, domain.ErrNotFound)
	}

	exists, err := uc.saleRepo.ExistsByInvoiceNumber(in.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("ya existe una venta con el número de factura %s: %w", in.InvoiceNumber, domain.ErrDuplicate)
	}

	warehouseID := in.WarehouseID
	if warehouseID == "" {
		warehouseID = uc.defaultWarehouseID
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}

	// Validar productos fuera de la tx (solo lectura)
	productsByID := make(map[string]*entity.Product, len(in.Lines))
	for _, lineReq := range in.Lines {
		if lineReq.Quantity < 1 || !lineReq.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(lineReq.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", lineReq.ProductID, domain.ErrNotFound)
		}
		if !product.IsActive() {
			return nil, fmt.Errorf("el producto %s no está activo: %w", product.Name, domain.ErrBusinessRule)
		}
		productsByID[lineReq.ProductID] = product
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		UserID:        in.UserID,
		WarehouseID:   warehouseID,
		InvoiceNumber: in.InvoiceNumber,
		SaleDate:      now,
		Discount:      in.Discount,
		Notes:         in.Notes,
		ExternalCode:  in.ExternalCode,
		PaymentStatus: entity.PaymentStatusPending,
	}

	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		linesTotal := decimal.Zero
		for _, lineReq := range in.Lines {
			product := productsByID[lineReq.ProductID]

			// Bloquea la fila del nivel; si no hay suficiente, se rechaza la
			// venta completa y el rollback deshace los descuentos anteriores.
			level, err := stockRepo.GetForUpdate(lineReq.ProductID, warehouseID)
			if err != nil {
				return err
			}
			if level.Quantity < lineReq.Quantity {
				return fmt.Errorf("stock insuficiente para el producto %s (disponible %d, solicitado %d): %w",
					product.Name, level.Quantity, lineReq.Quantity, domain.ErrInsufficientStock)
			}

			line := entity.SaleLine{
				ID:        uuid.New().String(),
				ProductID: lineReq.ProductID,
				Quantity:  lineReq.Quantity,
				UnitPrice: lineReq.UnitPrice,
			}
			line.ComputeTotals(product.TaxRate)
			sale.Lines = append(sale.Lines, line)
			linesTotal = linesTotal.Add(line.Total)

			before := level.Quantity
			level.Quantity = before - lineReq.Quantity
			level.UpdatedAt = now
			if err := stockRepo.Upsert(level); err != nil {
				return err
			}
			mov := &entity.Movement{
				ID:             uuid.New().String(),
				ProductID:      lineReq.ProductID,
				WarehouseID:    warehouseID,
				Type:           entity.MovementTypeExit,
				QuantityBefore: before,
				QuantityAfter:  level.Quantity,
				Reason:         "Venta - Factura: " + in.InvoiceNumber,
				Reference:      in.InvoiceNumber,
				CreatedAt:      now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		sale.Total = linesTotal.Sub(sale.Discount)
		if !sale.Total.GreaterThan(decimal.Zero) {
			return fmt.Errorf("el descuento deja el total de la venta en cero o negativo: %w", domain.ErrBusinessRule)
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("invoice_number", sale.InvoiceNumber).Msg("venta creada")
	return uc.toResponse(sale)
}

// UpdatePaymentStatus actualiza el estado de pago. No interactúa con stock.
func (uc *UseCase) UpdatePaymentStatus(ctx context.Context, saleID, status string) (*dto.SaleResponse, error) {
	if !entity.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}
	if err := uc.saleRepo.UpdatePaymentStatus(saleID, status); err != nil {
		return nil, err
	}
	sale.PaymentStatus = status

	uc.log.Info().Str("sale_id", saleID).Str("status", status).Msg("estado de pago actualizado")
	return uc.toResponse(sale)
}

// GetByID obtiene una venta con su vista compuesta.
func (uc *UseCase) GetByID(saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}
	return uc.toResponse(sale)
}

// List lista todas las ventas.
func (uc *UseCase) List(limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(sales)
}

// ListByCustomer lista ventas de un cliente.
func (uc *UseCase) ListByCustomer(customerID string, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(sales)
}

// ListByDateRange lista ventas en un rango de fechas.
func (uc *UseCase) ListByDateRange(from, to time.Time, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(sales)
}

func (uc *UseCase) toResponse(sale *entity.Sale) (*dto.SaleResponse, error) {
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(sale.UserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SaleResponse{
		ID:            sale.ID,
		WarehouseID:   sale.WarehouseID,
		InvoiceNumber: sale.InvoiceNumber,
		SaleDate:      sale.SaleDate,
		Discount:      sale.Discount,
		Total:         sale.Total,
		Notes:         sale.Notes,
		ExternalCode:  sale.ExternalCode,
		PaymentStatus: sale.PaymentStatus,
	}
	if customer != nil {
		resp.Customer = dto.CustomerBasicResponse{ID: customer.ID, Name: customer.Name, LastName: customer.LastName, Document: customer.Document}
	}
	if user != nil {
		resp.User = dto.UserBasicResponse{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
	}
	for _, line := range sale.Lines {
		lineResp := dto.SaleLineResponse{
			ID:        line.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
			TaxTotal:  line.TaxTotal,
			Total:     line.Total,
		}
		if product, err := uc.productRepo.GetByID(line.ProductID); err == nil && product != nil {
			lineResp.Product = dto.ProductBasicResponse{ID: product.ID, Code: product.Code, Name: product.Name, TaxRate: product.TaxRate}
		}
		resp.Lines = append(resp.Lines, lineResp)
	}
	return resp, nil
}

func (uc *UseCase) toResponses(sales []*entity.Sale) ([]*dto.SaleResponse, error) {
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		resp, err := uc.toResponse(sale)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
