package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/application/purchasing"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/testutil/memrepo"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	supplierID  = "sup-1"
	buyerID     = "user-1"
	productID   = "prod-1"
	warehouseID = "wh-1"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc     *purchasing.UseCase
	runner *memrepo.TxRunner
}

// newFixture arma el caso de uso con repositorios en memoria y un catálogo
// mínimo: un proveedor activo, un usuario, un producto con IVA 19% y una bodega.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	runner := memrepo.NewTxRunner()
	supplierRepo := memrepo.NewSupplierRepo(&entity.Supplier{ID: supplierID, Name: "Proveedor Uno", TaxID: "900123456-1", Status: entity.StatusActive})
	userRepo := memrepo.NewUserRepo(&entity.User{ID: buyerID, Email: "compras@umb.test", FirstName: "Ana", LastName: "García", Role: entity.RoleBodeguero, Status: entity.StatusActive})
	productRepo := memrepo.NewProductRepo(&entity.Product{ID: productID, Code: "7701234567890", Name: "Café 500g", TaxRate: dec("19"), Status: entity.StatusActive})
	warehouseRepo := memrepo.NewWarehouseRepo(&entity.Warehouse{ID: warehouseID, Name: "Bodega Principal", Status: entity.StatusActive})
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := purchasing.NewUseCase(runner, runner.Purchases, supplierRepo, userRepo, productRepo, warehouseRepo, log)
	return &fixture{uc: uc, runner: runner}
}

func createRequest(number string, quantity int, unitCost string) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SupplierID: supplierID,
		UserID:     buyerID,
		Number:     number,
		Lines: []dto.CreatePurchaseLineRequest{
			{ProductID: productID, WarehouseID: warehouseID, Quantity: quantity, UnitCost: dec(unitCost)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotalesYQuedaPendiente(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), createRequest("OC-001", 10, "100.00"))
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusPending, resp.Status)
	assert.True(t, dec("1000.00").Equal(resp.Subtotal), "subtotal fue %s", resp.Subtotal)
	assert.True(t, dec("190.00").Equal(resp.TaxTotal), "IVA fue %s", resp.TaxTotal)
	assert.True(t, dec("1190.00").Equal(resp.Total), "total fue %s", resp.Total)
	require.Len(t, resp.Lines, 1)
	assert.True(t, dec("1190.00").Equal(resp.Lines[0].Total))

	// Crear no toca stock ni genera movimientos
	assert.Equal(t, 0, f.runner.Stock.Quantity(productID, warehouseID))
	assert.Empty(t, f.runner.Movements.All(), "una compra PENDING no debe generar movimientos")
}

func TestCreate_NumeroDuplicado_RetornaErrDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), createRequest("OC-001", 5, "50.00"))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), createRequest("OC-001", 2, "80.00"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el número de compra es único")
}

func TestCreate_CantidadInvalida_RetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), createRequest("OC-002", 0, "100.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ProveedorInexistente_RetornaErrNotFound(t *testing.T) {
	f := newFixture(t)

	req := createRequest("OC-003", 1, "10.00")
	req.SupplierID = "sup-fantasma"
	_, err := f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_IncrementaStockYRegistraEntrada(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, warehouseID, 3, 2)

	created, err := f.uc.Create(context.Background(), createRequest("OC-010", 10, "100.00"))
	require.NoError(t, err)

	received, err := f.uc.Receive(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusReceived, received.Status)
	assert.Equal(t, 13, f.runner.Stock.Quantity(productID, warehouseID), "el stock debe incrementarse en la cantidad de la línea")

	entries := f.runner.Movements.ByType(entity.MovementTypeEntry)
	require.Len(t, entries, 1, "debe haber exactamente un movimiento ENTRY por línea")
	assert.Equal(t, 3, entries[0].QuantityBefore)
	assert.Equal(t, 13, entries[0].QuantityAfter)
	assert.Equal(t, "Compra recibida - Número: OC-010", entries[0].Reason)
	assert.Equal(t, "OC-010", entries[0].Reference)
}

func TestReceive_CreaNivelSiNoExiste(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), createRequest("OC-011", 7, "40.00"))
	require.NoError(t, err)
	require.False(t, f.runner.Stock.Exists(productID, warehouseID))

	_, err = f.uc.Receive(context.Background(), created.ID)
	require.NoError(t, err)

	assert.True(t, f.runner.Stock.Exists(productID, warehouseID), "recibir debe crear el nivel con cantidad 0 y sumarle la línea")
	assert.Equal(t, 7, f.runner.Stock.Quantity(productID, warehouseID))
}

func TestReceive_CompraYaRecibida_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), createRequest("OC-012", 2, "10.00"))
	require.NoError(t, err)
	_, err = f.uc.Receive(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "recibir dos veces duplicaría stock")
	assert.Equal(t, 2, f.runner.Stock.Quantity(productID, warehouseID), "el stock no debe cambiar en el segundo intento")
}

func TestReceive_CompraInexistente_RetornaErrNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Receive(context.Background(), "compra-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_CompraPendiente_NoTocaStock(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, warehouseID, 5, 0)

	created, err := f.uc.Create(context.Background(), createRequest("OC-020", 4, "25.00"))
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(context.Background(), created.ID, "proveedor sin disponibilidad")
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusCancelled, cancelled.Status)
	assert.Contains(t, cancelled.Notes, "CANCELADA: proveedor sin disponibilidad")
	assert.Equal(t, 5, f.runner.Stock.Quantity(productID, warehouseID))
	assert.Empty(t, f.runner.Movements.All())
}

func TestCancel_LuegoRecibir_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), createRequest("OC-021", 4, "25.00"))
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), created.ID, "")
	require.NoError(t, err)

	_, err = f.uc.Receive(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "una compra cancelada ya no está PENDING")
	assert.Equal(t, 0, f.runner.Stock.Quantity(productID, warehouseID))
}

func TestCancel_CompraRecibida_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), createRequest("OC-022", 4, "25.00"))
	require.NoError(t, err)
	_, err = f.uc.Receive(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), created.ID, "tarde")
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "cancelar después de recibir dejaría el stock inconsistente")

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, got.Status, "el estado RECEIVED debe conservarse")
}
