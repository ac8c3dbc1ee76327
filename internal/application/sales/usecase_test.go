package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/application/sales"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/testutil/memrepo"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	customerID  = "cust-1"
	sellerID    = "user-1"
	warehouseID = "wh-1"
	productAID  = "prod-a"
	productBID  = "prod-b"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc     *sales.UseCase
	runner *memrepo.TxRunner
}

// newFixture arma el caso de uso con dos productos: A con IVA 19% y B exento.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	runner := memrepo.NewTxRunner()
	customerRepo := memrepo.NewCustomerRepo(&entity.Customer{ID: customerID, Name: "Carlos", LastName: "Pérez", Document: "1020304050", Status: entity.StatusActive})
	userRepo := memrepo.NewUserRepo(&entity.User{ID: sellerID, Email: "ventas@umb.test", FirstName: "Luisa", LastName: "Rojas", Role: entity.RoleVendedor, Status: entity.StatusActive})
	productRepo := memrepo.NewProductRepo(
		&entity.Product{ID: productAID, Code: "A-001", Name: "Arroz 1kg", TaxRate: dec("19"), Status: entity.StatusActive},
		&entity.Product{ID: productBID, Code: "B-001", Name: "Panela", TaxRate: dec("0"), Status: entity.StatusActive},
	)
	warehouseRepo := memrepo.NewWarehouseRepo(&entity.Warehouse{ID: warehouseID, Name: "Bodega Principal", Status: entity.StatusActive})
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := sales.NewUseCase(runner, runner.Sales, customerRepo, userRepo, productRepo, warehouseRepo, warehouseID, log)
	return &fixture{uc: uc, runner: runner}
}

func saleRequest(invoice string, lines ...dto.CreateSaleLineRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID:    customerID,
		UserID:        sellerID,
		WarehouseID:   warehouseID,
		InvoiceNumber: invoice,
		Lines:         lines,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYRegistraSalida(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productAID, warehouseID, 10, 2)

	resp, err := f.uc.Create(context.Background(), saleRequest("FV-001",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 4, UnitPrice: dec("100.00")},
	))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	// 400.00 + 76.00 de IVA
	assert.True(t, dec("476.00").Equal(resp.Total), "total fue %s", resp.Total)
	assert.Equal(t, 6, f.runner.Stock.Quantity(productAID, warehouseID))

	exits := f.runner.Movements.ByType(entity.MovementTypeExit)
	require.Len(t, exits, 1)
	assert.Equal(t, 10, exits[0].QuantityBefore)
	assert.Equal(t, 6, exits[0].QuantityAfter)
	assert.Equal(t, "Venta - Factura: FV-001", exits[0].Reason)
	assert.Equal(t, "FV-001", exits[0].Reference)
}

func TestCreate_StockInsuficiente_RechazaVentaCompleta(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productAID, warehouseID, 5, 0)

	_, err := f.uc.Create(context.Background(), saleRequest("FV-002",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 8, UnitPrice: dec("100.00")},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, f.runner.Stock.Quantity(productAID, warehouseID), "el stock debe quedar intacto")
	assert.Empty(t, f.runner.Movements.All(), "una venta rechazada no deja movimientos")
	assert.Equal(t, 0, f.runner.Sales.Count(), "una venta rechazada no se persiste")
}

// Si la segunda línea falla por stock, el descuento ya aplicado a la primera
// se revierte: todo o nada.
func TestCreate_FallaSegundaLinea_RevierteLaPrimera(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productAID, warehouseID, 10, 0)
	f.runner.Stock.Seed(productBID, warehouseID, 5, 0)

	_, err := f.uc.Create(context.Background(), saleRequest("FV-003",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 4, UnitPrice: dec("100.00")},
		dto.CreateSaleLineRequest{ProductID: productBID, Quantity: 8, UnitPrice: dec("50.00")},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.runner.Stock.Quantity(productAID, warehouseID), "el descuento de la primera línea debe revertirse")
	assert.Equal(t, 5, f.runner.Stock.Quantity(productBID, warehouseID))
	assert.Empty(t, f.runner.Movements.All())
	assert.Equal(t, 0, f.runner.Sales.Count())
}

func TestCreate_DescuentoDejaTotalEnCero_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productBID, warehouseID, 10, 0)

	req := saleRequest("FV-004",
		dto.CreateSaleLineRequest{ProductID: productBID, Quantity: 2, UnitPrice: dec("50.00")},
	)
	req.Discount = dec("100.00") // igual al total de líneas

	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	assert.Equal(t, 10, f.runner.Stock.Quantity(productBID, warehouseID), "el rollback debe restaurar el stock descontado")
	assert.Equal(t, 0, f.runner.Sales.Count())
}

func TestCreate_FacturaDuplicada_RetornaErrDuplicate(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productAID, warehouseID, 20, 0)

	_, err := f.uc.Create(context.Background(), saleRequest("FV-005",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 1, UnitPrice: dec("10.00")},
	))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), saleRequest("FV-005",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 1, UnitPrice: dec("10.00")},
	))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 19, f.runner.Stock.Quantity(productAID, warehouseID), "solo la primera venta debe descontar")
}

func TestCreate_DescuentoNegativo_RetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	req := saleRequest("FV-006",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 1, UnitPrice: dec("10.00")},
	)
	req.Discount = dec("-5.00")

	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdatePaymentStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePaymentStatus_NoTocaStock(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productAID, warehouseID, 10, 0)

	created, err := f.uc.Create(context.Background(), saleRequest("FV-010",
		dto.CreateSaleLineRequest{ProductID: productAID, Quantity: 3, UnitPrice: dec("100.00")},
	))
	require.NoError(t, err)
	movsAfterSale := len(f.runner.Movements.All())

	updated, err := f.uc.UpdatePaymentStatus(context.Background(), created.ID, entity.PaymentStatusPaid)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, 7, f.runner.Stock.Quantity(productAID, warehouseID), "cambiar el estado de pago no debe mover inventario")
	assert.Len(t, f.runner.Movements.All(), movsAfterSale)
}

func TestUpdatePaymentStatus_EstadoInvalido_RetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdatePaymentStatus(context.Background(), "venta-x", "PAGADO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
