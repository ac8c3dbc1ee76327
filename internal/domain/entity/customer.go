package entity

import "time"

// Customer representa un cliente de ventas.
type Customer struct {
	ID        string
	Name      string
	LastName  string
	Document  string // cédula o NIT, único
	Email     string
	Phone     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el cliente admite nuevas ventas.
func (c *Customer) IsActive() bool { return c.Status == StatusActive }
