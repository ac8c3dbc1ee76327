// Package memrepo implementa los puertos de repositorio en memoria para los
// tests de los casos de uso. El TxRunner de este paquete toma una instantánea
// antes de ejecutar la función y la restaura si falla, reproduciendo el
// rollback transaccional de la implementación en Postgres.
package memrepo

import (
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockRepo)(nil)

// StockRepo niveles de stock en memoria, indexados por producto+bodega.
type StockRepo struct {
	levels map[string]*entity.StockLevel
}

// NewStockRepo crea el repositorio vacío.
func NewStockRepo() *StockRepo {
	return &StockRepo{levels: make(map[string]*entity.StockLevel)}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// Seed fija directamente el nivel de un producto en una bodega.
func (r *StockRepo) Seed(productID, warehouseID string, quantity, reorderThreshold int) {
	r.levels[stockKey(productID, warehouseID)] = &entity.StockLevel{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		Quantity:         quantity,
		ReorderThreshold: reorderThreshold,
	}
}

// Quantity devuelve la cantidad actual, 0 si el nivel no existe.
func (r *StockRepo) Quantity(productID, warehouseID string) int {
	if l, ok := r.levels[stockKey(productID, warehouseID)]; ok {
		return l.Quantity
	}
	return 0
}

// Exists indica si hay fila para el par producto+bodega.
func (r *StockRepo) Exists(productID, warehouseID string) bool {
	_, ok := r.levels[stockKey(productID, warehouseID)]
	return ok
}

func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockLevel, error) {
	l, ok := r.levels[stockKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

// GetForUpdate imita el comportamiento del adaptador Postgres: si la fila no
// existe la crea con cantidad 0 y la devuelve; el rollback del TxRunner la
// elimina si la transacción falla.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error) {
	key := stockKey(productID, warehouseID)
	l, ok := r.levels[key]
	if !ok {
		l = &entity.StockLevel{ProductID: productID, WarehouseID: warehouseID}
		r.levels[key] = l
	}
	c := *l
	return &c, nil
}

func (r *StockRepo) Upsert(level *entity.StockLevel) error {
	c := *level
	r.levels[stockKey(level.ProductID, level.WarehouseID)] = &c
	return nil
}

func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, l := range r.levels {
		if l.WarehouseID == warehouseID {
			c := *l
			out = append(out, &c)
		}
	}
	return page(out, limit, offset), nil
}

func (r *StockRepo) ListBelowThreshold(warehouseID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, l := range r.levels {
		if warehouseID != "" && l.WarehouseID != warehouseID {
			continue
		}
		if l.Quantity <= l.ReorderThreshold {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *StockRepo) snapshot() map[string]*entity.StockLevel {
	s := make(map[string]*entity.StockLevel, len(r.levels))
	for k, v := range r.levels {
		c := *v
		s[k] = &c
	}
	return s
}

func (r *StockRepo) restore(s map[string]*entity.StockLevel) {
	r.levels = s
}

// page aplica limit/offset sobre una lista ya filtrada.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
