package postgres_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Orden de las líneas
// ──────────────────────────────────────────────────────────────────────────────

// Los IDs de línea son UUIDs, así que el orden de inserción debe persistirse en
// una columna propia: line_number.
func TestCreate_NumeraLasLineasEnOrdenDeInsercion(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewPurchaseRepository(q)

	order := &entity.PurchaseOrder{
		SupplierID: "sup-1",
		UserID:     "user-1",
		Number:     "OC-2026-001",
		OrderDate:  time.Now(),
		Status:     entity.PurchaseStatusPending,
		CreatedAt:  time.Now(),
		Lines: []entity.PurchaseLine{
			{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: 3, UnitCost: decimal.NewFromInt(100)},
			{ProductID: "prod-2", WarehouseID: "wh-1", Quantity: 5, UnitCost: decimal.NewFromInt(40)},
		},
	}
	require.NoError(t, repo.Create(order))

	require.Len(t, q.calls, 3, "una inserción de cabecera y una por línea")
	assert.Contains(t, q.calls[1].sql, "line_number")
	assert.Equal(t, 1, q.calls[1].args[2], "la primera línea lleva line_number 1")
	assert.Equal(t, 2, q.calls[2].args[2], "la segunda línea lleva line_number 2")
	assert.Equal(t, "prod-1", q.calls[1].args[3])
	assert.Equal(t, "prod-2", q.calls[2].args[3])
}

func TestGetByID_CargaLineasOrdenadasPorNumeroDeLinea(t *testing.T) {
	q := &fakeQuerier{scan: func(...any) error { return nil }}
	repo := postgres.NewPurchaseRepository(q)

	_, err := repo.GetByID("compra-1")
	require.NoError(t, err)

	require.Len(t, q.calls, 2)
	assert.Contains(t, q.calls[1].sql, "FROM purchase_lines")
	assert.Contains(t, q.calls[1].sql, "ORDER BY line_number")
}
