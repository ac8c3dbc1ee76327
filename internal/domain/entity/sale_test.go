package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

func TestSaleLine_ComputeTotals_IVA5(t *testing.T) {
	line := entity.SaleLine{Quantity: 4, UnitPrice: dec("1200.00")}
	line.ComputeTotals(dec("5"))

	assert.True(t, dec("4800.00").Equal(line.Subtotal))
	assert.True(t, dec("240.00").Equal(line.TaxTotal))
	assert.True(t, dec("5040.00").Equal(line.Total))
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusPending))
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusPaid))
	assert.True(t, entity.ValidPaymentStatus(entity.PaymentStatusCancelled))

	assert.False(t, entity.ValidPaymentStatus("PAGADO"), "solo se aceptan los estados canónicos")
	assert.False(t, entity.ValidPaymentStatus(""))
}
