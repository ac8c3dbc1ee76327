package repository

import (
	"time"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos: solo inserción
// y consulta, nunca update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// ListByProductAndWarehouse devuelve el historial de un nivel, más reciente primero.
	ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.Movement, error)
	ListByType(movementType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
