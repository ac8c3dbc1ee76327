package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string // único
	Address   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la bodega puede recibir o despachar stock.
func (w *Warehouse) IsActive() bool { return w.Status == StatusActive }
