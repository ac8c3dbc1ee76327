package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta. La venta nace completa; solo el estado de pago
// muta después, sin tocar inventario.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusPaid      = "PAID"
	PaymentStatusCancelled = "CANCELLED"
)

// ValidPaymentStatus verifica que el estado de pago sea válido.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}

// Sale venta a cliente. Su creación descuenta stock línea a línea dentro de una
// sola unidad atómica: si una línea falla, ninguna queda aplicada.
type Sale struct {
	ID            string
	CustomerID    string
	UserID        string // vendedor
	WarehouseID   string // bodega de la que salen todas las líneas
	InvoiceNumber string // único
	SaleDate      time.Time
	Discount      decimal.Decimal // >= 0
	Total         decimal.Decimal // suma de líneas - descuento, > 0
	Notes         string
	ExternalCode  string // correlación externa (olaCode)
	PaymentStatus string
	Lines         []SaleLine
}

// SaleLine línea de venta.
type SaleLine struct {
	ID        string
	ProductID string
	Quantity  int             // >= 1
	UnitPrice decimal.Decimal // > 0
	Subtotal  decimal.Decimal
	TaxTotal  decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals calcula subtotal, IVA y total de la línea (mismo cálculo que la
// línea de compra, con el precio de venta).
func (l *SaleLine) ComputeTotals(taxRate decimal.Decimal) {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
	l.TaxTotal = l.Subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	l.Total = l.Subtotal.Add(l.TaxTotal)
}
