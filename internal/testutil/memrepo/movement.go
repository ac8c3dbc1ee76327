package memrepo

import (
	"time"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria, solo append.
type MovementRepo struct {
	movements []*entity.Movement
}

// NewMovementRepo crea el repositorio vacío.
func NewMovementRepo() *MovementRepo {
	return &MovementRepo{}
}

// All devuelve todos los movimientos en orden de inserción.
func (r *MovementRepo) All() []*entity.Movement {
	out := make([]*entity.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		c := *m
		out = append(out, &c)
	}
	return out
}

// ByType filtra los movimientos por tipo, en orden de inserción.
func (r *MovementRepo) ByType(movementType string) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.Type == movementType {
			c := *m
			out = append(out, &c)
		}
	}
	return out
}

func (r *MovementRepo) Create(movement *entity.Movement) error {
	c := *movement
	r.movements = append(r.movements, &c)
	return nil
}

func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool {
		return m.ProductID == productID && inRange(m.CreatedAt, from, to)
	}, limit, offset), nil
}

func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool {
		return m.WarehouseID == warehouseID && inRange(m.CreatedAt, from, to)
	}, limit, offset), nil
}

func (r *MovementRepo) ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool {
		return m.ProductID == productID && m.WarehouseID == warehouseID
	}, limit, offset), nil
}

func (r *MovementRepo) ListByType(movementType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.list(func(m *entity.Movement) bool {
		return m.Type == movementType && inRange(m.CreatedAt, from, to)
	}, limit, offset), nil
}

// list filtra y devuelve los movimientos más recientes primero.
func (r *MovementRepo) list(match func(*entity.Movement) bool, limit, offset int) []*entity.Movement {
	var out []*entity.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if match(r.movements[i]) {
			c := *r.movements[i]
			out = append(out, &c)
		}
	}
	return page(out, limit, offset)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func (r *MovementRepo) snapshot() int {
	return len(r.movements)
}

func (r *MovementRepo) restore(n int) {
	r.movements = r.movements[:n]
}
