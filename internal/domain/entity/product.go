package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados compartidos por las entidades de referencia (producto, bodega,
// proveedor, cliente, usuario).
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Product representa un producto del catálogo. El stock se maneja por bodega
// en StockLevel, nunca aquí.
type Product struct {
	ID          string
	Code        string // código de barras, único
	Name        string
	Description string
	UnitPrice   decimal.Decimal // precio de venta sugerido
	TaxRate     decimal.Decimal // porcentaje de IVA: 0, 5 o 19
	CategoryID  string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el producto puede venderse o comprarse.
func (p *Product) IsActive() bool { return p.Status == StatusActive }
