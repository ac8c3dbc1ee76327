package entity

import "time"

// Estados de un traslado entre bodegas. Las dos fases mutadoras son
// transacciones separadas: un traslado puede quedar IN_TRANSIT indefinidamente.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusReceived  = "RECEIVED"
)

// Transfer traslado de stock entre dos bodegas distintas.
// PENDING no toca stock; PENDING→IN_TRANSIT debita origen; IN_TRANSIT→RECEIVED
// acredita destino. La suma debitada por producto es igual a la acreditada.
type Transfer struct {
	ID            string
	SourceID      string // bodega origen
	DestinationID string // bodega destino, distinta del origen
	UserID        string // solicitante
	Notes         string
	Status        string
	RequestedAt   time.Time
	ReceivedAt    *time.Time // se fija al pasar a RECEIVED
	Lines         []TransferLine
}

// TransferLine línea de traslado.
type TransferLine struct {
	ID        string
	ProductID string
	Quantity  int // >= 1
}
