package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry      = "ENTRY"      // entrada (compra recibida, inventario inicial)
	MovementTypeExit       = "EXIT"       // salida (venta)
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual
	MovementTypeTransfer   = "TRANSFER"   // traslado entre bodegas
)

// ValidMovementType verifica que el tipo sea uno de los soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}

// Movement registro inmutable del libro de movimientos: cada cambio de cantidad
// sobre un StockLevel genera exactamente un registro; nunca se actualiza ni borra.
// QuantityAfter - QuantityBefore es el delta aplicado al stock en ese instante.
type Movement struct {
	ID             string
	ProductID      string
	WarehouseID    string
	Type           string
	QuantityBefore int
	QuantityAfter  int
	Reason         string // obligatorio
	Reference      string // correlación: número de compra/factura, id de traslado
	CreatedAt      time.Time
}
