package entity

import "time"

// StockLevel representa el stock actual de un producto en una bodega.
// Existe a lo sumo una fila por par (producto, bodega); la cantidad nunca es negativa.
type StockLevel struct {
	ProductID        string
	WarehouseID      string
	Quantity         int
	ReorderThreshold int // stock mínimo: en o por debajo se considera bajo stock
	UpdatedAt        time.Time
}

// BelowThreshold indica si el nivel está en o por debajo del stock mínimo (inclusivo).
func (s *StockLevel) BelowThreshold() bool {
	return s.Quantity <= s.ReorderThreshold
}
