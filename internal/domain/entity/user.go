package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del sistema (solicita compras, vende, traslada).
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt, nunca plano después de persistir
	FirstName    string
	LastName     string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede autenticarse y operar.
func (u *User) IsActive() bool { return u.Status == StatusActive }
