package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/application/inventory"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/testutil/memrepo"
	"github.com/sistemas-transaccionales-umb/back/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID   = "prod-1"
	warehouseID = "wh-1"
)

type fixture struct {
	uc     *inventory.UseCase
	runner *memrepo.TxRunner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	runner := memrepo.NewTxRunner()
	productRepo := memrepo.NewProductRepo(&entity.Product{ID: productID, Code: "P-001", Name: "Azúcar 1kg", TaxRate: decimal.RequireFromString("5"), Status: entity.StatusActive})
	warehouseRepo := memrepo.NewWarehouseRepo(&entity.Warehouse{ID: warehouseID, Name: "Bodega Principal", Status: entity.StatusActive})
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := inventory.NewUseCase(runner, runner.Stock, runner.Movements, productRepo, warehouseRepo, log)
	return &fixture{uc: uc, runner: runner}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateLevel
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLevel_RegistraInventarioInicial(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateLevel(context.Background(), dto.CreateStockLevelRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: 25, ReorderThreshold: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, resp.Quantity)
	assert.Equal(t, 5, resp.ReorderThreshold)
	assert.False(t, resp.BelowThreshold)

	entries := f.runner.Movements.ByType(entity.MovementTypeEntry)
	require.Len(t, entries, 1, "el inventario inicial deja un movimiento ENTRY")
	assert.Equal(t, 0, entries[0].QuantityBefore)
	assert.Equal(t, 25, entries[0].QuantityAfter)
	assert.Equal(t, "Inventario inicial", entries[0].Reason)
}

func TestCreateLevel_ParDuplicado_RetornaErrDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateLevel(context.Background(), dto.CreateStockLevelRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: 10,
	})
	require.NoError(t, err)

	_, err = f.uc.CreateLevel(context.Background(), dto.CreateStockLevelRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: 3,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "a lo sumo una fila por producto+bodega")
	assert.Equal(t, 10, f.runner.Stock.Quantity(productID, warehouseID))
}

func TestCreateLevel_ProductoInexistente_RetornaErrNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateLevel(context.Background(), dto.CreateStockLevelRequest{
		ProductID: "prod-fantasma", WarehouseID: warehouseID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_DeltaPositivoYNegativo(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, warehouseID, 10, 2)

	resp, err := f.uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: 5, Reason: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Quantity)

	resp, err = f.uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: -12, Reason: "producto averiado",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Quantity)

	adjustments := f.runner.Movements.ByType(entity.MovementTypeAdjustment)
	require.Len(t, adjustments, 2)
	assert.Equal(t, 10, adjustments[0].QuantityBefore)
	assert.Equal(t, 15, adjustments[0].QuantityAfter)
	assert.Equal(t, "conteo físico", adjustments[0].Reason)
	assert.Equal(t, 15, adjustments[1].QuantityBefore)
	assert.Equal(t, 3, adjustments[1].QuantityAfter)
}

func TestAdjust_ResultadoNegativo_RetornaErrBusinessRule(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, warehouseID, 4, 0)

	_, err := f.uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: -5, Reason: "merma",
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "la cantidad nunca puede quedar negativa")

	assert.Equal(t, 4, f.runner.Stock.Quantity(productID, warehouseID))
	assert.Empty(t, f.runner.Movements.All(), "un ajuste rechazado no deja movimiento")
}

func TestAdjust_SinMotivo_RetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo del ajuste es obligatorio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLevel_NivelInexistente_RetornaErrNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetLevel(productID, warehouseID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El umbral es inclusivo: cantidad == umbral entra en la alerta.
func TestListBelowThreshold_UmbralInclusivo(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, warehouseID, 5, 5)
	f.runner.Stock.Seed("prod-2", warehouseID, 8, 5)

	levels, err := f.uc.ListBelowThreshold(warehouseID)
	require.NoError(t, err)

	require.Len(t, levels, 1, "solo el nivel en o bajo el umbral debe aparecer")
	assert.Equal(t, productID, levels[0].ProductID)
	assert.True(t, levels[0].BelowThreshold)
}

func TestListMovements_SinFiltros_RetornaErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ListMovements(dto.MovementFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "se exige al menos un filtro")
}

func TestListMovements_PorProductoYBodega(t *testing.T) {
	f := newFixture(t)
	f.runner.Stock.Seed(productID, warehouseID, 10, 0)

	_, err := f.uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID: productID, WarehouseID: warehouseID, Quantity: 2, Reason: "conteo físico",
	})
	require.NoError(t, err)

	movs, err := f.uc.ListMovements(dto.MovementFilter{ProductID: productID, WarehouseID: warehouseID})
	require.NoError(t, err)

	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Type)
	assert.Equal(t, 10, movs[0].QuantityBefore)
	assert.Equal(t, 12, movs[0].QuantityAfter)
}
