package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

// dec es un atajo para construir decimales en los tests.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Línea de compra típica: 10 unidades a $100.00 con IVA 19%.
func TestPurchaseLine_ComputeTotals_IVA19(t *testing.T) {
	line := entity.PurchaseLine{Quantity: 10, UnitCost: dec("100.00")}
	line.ComputeTotals(dec("19"))

	assert.True(t, dec("1000.00").Equal(line.Subtotal), "subtotal = costo x cantidad, fue %s", line.Subtotal)
	assert.True(t, dec("190.00").Equal(line.TaxTotal), "IVA = subtotal x 19%%, fue %s", line.TaxTotal)
	assert.True(t, dec("1190.00").Equal(line.Total), "total = subtotal + IVA, fue %s", line.Total)
}

func TestPurchaseLine_ComputeTotals_IVACero(t *testing.T) {
	line := entity.PurchaseLine{Quantity: 3, UnitCost: dec("2500.50")}
	line.ComputeTotals(dec("0"))

	assert.True(t, dec("7501.50").Equal(line.Subtotal))
	assert.True(t, decimal.Zero.Equal(line.TaxTotal), "con tasa 0 no hay IVA")
	assert.True(t, dec("7501.50").Equal(line.Total))
}

// El IVA se redondea a 2 decimales antes de sumarse al total.
func TestPurchaseLine_ComputeTotals_RedondeaADosDecimales(t *testing.T) {
	line := entity.PurchaseLine{Quantity: 3, UnitCost: dec("33.33")}
	line.ComputeTotals(dec("19"))

	// 99.99 * 19% = 18.9981 -> 19.00
	assert.True(t, dec("99.99").Equal(line.Subtotal))
	assert.True(t, dec("19.00").Equal(line.TaxTotal), "el IVA debe redondearse a 2 decimales, fue %s", line.TaxTotal)
	assert.True(t, dec("118.99").Equal(line.Total))
}
