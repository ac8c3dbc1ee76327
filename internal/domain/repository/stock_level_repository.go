package repository

import "github.com/sistemas-transaccionales-umb/back/internal/domain/entity"

// StockLevelRepository define el puerto para consultar/actualizar stock por
// producto+bodega. Las mutaciones se hacen dentro de transacciones, siempre
// tras GetForUpdate, para que dos llamadas concurrentes no pierdan actualizaciones.
type StockLevelRepository interface {
	Get(productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si la fila no existe
	// la crea con cantidad 0 dentro de la misma transacción y la bloquea, de
	// modo que el primer stock de un par nuevo también queda serializado.
	GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
	// ListBelowThreshold devuelve niveles con cantidad <= stock mínimo (inclusivo);
	// warehouseID vacío consulta todas las bodegas.
	ListBelowThreshold(warehouseID string) ([]*entity.StockLevel, error)
}
