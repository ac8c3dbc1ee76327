package entity

import "time"

// Supplier representa un proveedor al que se le emiten órdenes de compra.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT, único
	Email     string
	Phone     string
	Address   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el proveedor admite nuevas compras.
func (s *Supplier) IsActive() bool { return s.Status == StatusActive }
