package transfers_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/application/transfers"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/testutil/memrepo"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	sourceID      = "wh-a"
	destinationID = "wh-b"
	requesterID   = "user-1"
	productID     = "prod-1"
	secondProdID  = "prod-2"
)

type fixture struct {
	uc     *transfers.UseCase
	runner *memrepo.TxRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	runner := memrepo.NewTxRunner()
	warehouseRepo := memrepo.NewWarehouseRepo(
		&entity.Warehouse{ID: sourceID, Name: "Bodega A", Status: entity.StatusActive},
		&entity.Warehouse{ID: destinationID, Name: "Bodega B", Status: entity.StatusActive},
	)
	userRepo := memrepo.NewUserRepo(&entity.User{ID: requesterID, Email: "bodega@umb.test", FirstName: "Pedro", LastName: "Mora", Role: entity.RoleBodeguero, Status: entity.StatusActive})
	productRepo := memrepo.NewProductRepo(
		&entity.Product{ID: productID, Code: "P-001", Name: "Aceite 1L", TaxRate: decimal.RequireFromString("19"), Status: entity.StatusActive},
		&entity.Product{ID: secondProdID, Code: "P-002", Name: "Arroz 500g", TaxRate: decimal.RequireFromString("5"), Status: entity.StatusActive},
	)
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := transfers.NewUseCase(runner, runner.Transfers, runner.Stock, warehouseRepo, userRepo, productRepo, log)
	return &fixture{uc: uc, runner: runner}
}

func transferRequest(quantity int) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		SourceID:      sourceID,
		DestinationID: destinationID,
		UserID:        requesterID,
		Lines:         []dto.CreateTransferLineRequest{{ProductID: productID, Quantity: quantity}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: Create -> Process -> Receive
// ──────────────────────────────────────────────────────────────────────────────

// Bodega A con 50 unidades, B sin nivel. Trasladar 20 debe dejar A en 30 y B en 20,
// con un movimiento TRANSFER en cada bodega.
func TestTransfer_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 50, 5)

	created, err := f.uc.Create(context.Background(), transferRequest(20))
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, created.Status)
	assert.Equal(t, 50, f.runner.Stock.Quantity(productID, sourceID), "crear no toca stock")
	assert.Nil(t, created.ReceivedAt)

	processed, err := f.uc.Process(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusInTransit, processed.Status)
	assert.Equal(t, 30, f.runner.Stock.Quantity(productID, sourceID))
	assert.Equal(t, 0, f.runner.Stock.Quantity(productID, destinationID), "en tránsito el destino aún no recibe")

	received, err := f.uc.Receive(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt, "recibir debe fijar la fecha de recibo")
	assert.Equal(t, 30, f.runner.Stock.Quantity(productID, sourceID))
	assert.Equal(t, 20, f.runner.Stock.Quantity(productID, destinationID))

	movs := f.runner.Movements.ByType(entity.MovementTypeTransfer)
	require.Len(t, movs, 2, "un TRANSFER de salida y uno de entrada")
	assert.Equal(t, sourceID, movs[0].WarehouseID)
	assert.Equal(t, 50, movs[0].QuantityBefore)
	assert.Equal(t, 30, movs[0].QuantityAfter)
	assert.Equal(t, destinationID, movs[1].WarehouseID)
	assert.Equal(t, 0, movs[1].QuantityBefore)
	assert.Equal(t, 20, movs[1].QuantityAfter)
	assert.Equal(t, "TRANS-"+created.ID, movs[0].Reference)
	assert.Equal(t, "TRANS-"+created.ID, movs[1].Reference)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_MismaBodega_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 50, 0)

	req := transferRequest(10)
	req.DestinationID = sourceID
	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestCreate_StockInsuficienteEnOrigen_RetornaErrInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 5, 0)

	_, err := f.uc.Create(context.Background(), transferRequest(10))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreate_SinNivelEnOrigen_RetornaErrInsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), transferRequest(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_TrasladoYaEnTransito_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 50, 0)

	created, err := f.uc.Create(context.Background(), transferRequest(10))
	require.NoError(t, err)
	_, err = f.uc.Process(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.uc.Process(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "procesar dos veces debitaría el origen doble")
	assert.Equal(t, 40, f.runner.Stock.Quantity(productID, sourceID), "el stock no debe cambiar en el segundo intento")
}

func TestReceive_TrasladoPendiente_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 50, 0)

	created, err := f.uc.Create(context.Background(), transferRequest(10))
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "no se puede recibir lo que no ha salido del origen")
	assert.Equal(t, 0, f.runner.Stock.Quantity(productID, destinationID))
}

func TestReceive_TrasladoYaRecibido_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 50, 0)

	created, err := f.uc.Create(context.Background(), transferRequest(10))
	require.NoError(t, err)
	_, err = f.uc.Process(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = f.uc.Receive(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Equal(t, 10, f.runner.Stock.Quantity(productID, destinationID), "recibir dos veces duplicaría el crédito")
}

// El pre-chequeo de Create no reserva stock: si otro flujo consumió el origen
// antes de Process, Process debe fallar y no debitar nada.
func TestProcess_StockConsumidoDespuesDeCrear_RetornaErrInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 20, 0)

	created, err := f.uc.Create(context.Background(), transferRequest(15))
	require.NoError(t, err)

	// Otro proceso se lleva el stock entre Create y Process
	f.runner.Stock.Seed(productID, sourceID, 5, 0)

	_, err = f.uc.Process(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, f.runner.Stock.Quantity(productID, sourceID), "sin débitos parciales")
	assert.Empty(t, f.runner.Movements.ByType(entity.MovementTypeTransfer))

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, got.Status, "el traslado debe seguir PENDING para reintentar")
}

// Con dos líneas, si la segunda queda corta al procesar, el débito y el
// movimiento de la primera deben revertirse completos.
func TestProcess_FallaSegundaLinea_RevierteLaPrimera(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, sourceID, 50, 0)
	f.runner.Stock.Seed(secondProdID, sourceID, 10, 0)

	req := transferRequest(4)
	req.Lines = append(req.Lines, dto.CreateTransferLineRequest{ProductID: secondProdID, Quantity: 8})
	created, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)

	// Otro proceso consume el segundo producto entre Create y Process
	f.runner.Stock.Seed(secondProdID, sourceID, 5, 0)

	_, err = f.uc.Process(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 50, f.runner.Stock.Quantity(productID, sourceID), "el débito de la primera línea debe revertirse")
	assert.Equal(t, 5, f.runner.Stock.Quantity(secondProdID, sourceID))
	assert.Empty(t, f.runner.Movements.ByType(entity.MovementTypeTransfer), "sin movimientos huérfanos de la línea debitada")

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, got.Status)
}
