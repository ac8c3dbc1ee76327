package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

// El umbral de stock mínimo es inclusivo: con cantidad igual al umbral el
// nivel ya se considera bajo stock.
func TestStockLevel_BelowThreshold_Inclusivo(t *testing.T) {
	level := entity.StockLevel{Quantity: 5, ReorderThreshold: 5}
	assert.True(t, level.BelowThreshold(), "cantidad == umbral debe contar como bajo stock")

	level.Quantity = 4
	assert.True(t, level.BelowThreshold())

	level.Quantity = 6
	assert.False(t, level.BelowThreshold())
}

func TestValidMovementType(t *testing.T) {
	for _, typ := range []string{
		entity.MovementTypeEntry,
		entity.MovementTypeExit,
		entity.MovementTypeAdjustment,
		entity.MovementTypeTransfer,
	} {
		assert.True(t, entity.ValidMovementType(typ), "tipo %s debe ser válido", typ)
	}

	assert.False(t, entity.ValidMovementType("SALIDA"))
	assert.False(t, entity.ValidMovementType(""))
}
