package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusReceived  = "RECEIVED"
	PurchaseStatusCancelled = "CANCELLED"
)

// PurchaseOrder orden de compra a proveedor. Los totales se recalculan en la
// creación a partir de las líneas y quedan inmutables una vez RECEIVED.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	UserID     string // solicitante
	Number     string // número de compra, único
	OrderDate  time.Time
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal // Subtotal + TaxTotal
	Status     string
	Notes      string
	CreatedAt  time.Time
	Lines      []PurchaseLine
}

// PurchaseLine línea de compra: cada línea entra a una bodega concreta.
type PurchaseLine struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int             // >= 1
	UnitCost    decimal.Decimal // > 0
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals calcula subtotal, IVA y total de la línea con redondeo a 2 decimales.
// taxRate es el porcentaje de IVA del producto (0, 5, 19).
func (l *PurchaseLine) ComputeTotals(taxRate decimal.Decimal) {
	l.Subtotal = l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
	l.TaxTotal = l.Subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	l.Total = l.Subtotal.Add(l.TaxTotal)
}
