package dto

import "time"

// CreateTransferRequest body para solicitar un traslado entre bodegas.
type CreateTransferRequest struct {
	SourceID      string                      `json:"source_warehouse_id"`
	DestinationID string                      `json:"destination_warehouse_id"`
	UserID        string                      `json:"user_id"`
	Notes         string                      `json:"notes,omitempty"`
	Lines         []CreateTransferLineRequest `json:"lines"`
}

// CreateTransferLineRequest línea del traslado.
type CreateTransferLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// TransferLineResponse línea del traslado.
type TransferLineResponse struct {
	ID       string               `json:"id"`
	Product  ProductBasicResponse `json:"product"`
	Quantity int                  `json:"quantity"`
}

// TransferResponse traslado con vista compuesta de sus referencias.
type TransferResponse struct {
	ID          string                 `json:"id"`
	Source      WarehouseBasicResponse `json:"source_warehouse"`
	Destination WarehouseBasicResponse `json:"destination_warehouse"`
	User        UserBasicResponse      `json:"user"`
	Status      string                 `json:"status"`
	Notes       string                 `json:"notes,omitempty"`
	RequestedAt time.Time              `json:"requested_at"`
	ReceivedAt  *time.Time             `json:"received_at,omitempty"`
	Lines       []TransferLineResponse `json:"lines"`
}
