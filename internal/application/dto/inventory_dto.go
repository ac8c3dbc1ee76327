package dto

import "time"

// CreateStockLevelRequest body para crear inventario inicial de un producto en una bodega.
type CreateStockLevelRequest struct {
	ProductID        string `json:"product_id"`
	WarehouseID      string `json:"warehouse_id"`
	Quantity         int    `json:"quantity"`
	ReorderThreshold int    `json:"reorder_threshold"`
}

// AdjustStockRequest body para un ajuste manual de inventario.
// Quantity es el delta firmado: positivo suma, negativo resta.
type AdjustStockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}

// StockLevelResponse nivel de stock de un producto en una bodega.
type StockLevelResponse struct {
	ProductID        string    `json:"product_id"`
	WarehouseID      string    `json:"warehouse_id"`
	Quantity         int       `json:"quantity"`
	ReorderThreshold int       `json:"reorder_threshold"`
	BelowThreshold   bool      `json:"below_threshold"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	WarehouseID    string    `json:"warehouse_id"`
	Type           string    `json:"type"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason"`
	Reference      string    `json:"reference,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementFilter filtros de consulta del historial de movimientos.
type MovementFilter struct {
	ProductID   string     `query:"product_id"`
	WarehouseID string     `query:"warehouse_id"`
	Type        string     `query:"type"`
	From        *time.Time `query:"from"`
	To          *time.Time `query:"to"`
	PageRequest
}
