package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para crear una venta. WarehouseID vacío usa la bodega
// por defecto configurada.
type CreateSaleRequest struct {
	CustomerID    string                  `json:"customer_id"`
	UserID        string                  `json:"user_id"`
	WarehouseID   string                  `json:"warehouse_id,omitempty"`
	InvoiceNumber string                  `json:"invoice_number"`
	Discount      decimal.Decimal         `json:"discount"`
	Notes         string                  `json:"notes,omitempty"`
	ExternalCode  string                  `json:"external_code,omitempty"`
	Lines         []CreateSaleLineRequest `json:"lines"`
}

// CreateSaleLineRequest línea de venta.
type CreateSaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdatePaymentStatusRequest body para actualizar el estado de pago.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"` // PENDING | PAID | CANCELLED
}

// CustomerBasicResponse vista mínima del cliente dentro de una venta.
type CustomerBasicResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Document string `json:"document"`
}

// SaleLineResponse línea de venta con totales calculados.
type SaleLineResponse struct {
	ID        string               `json:"id"`
	Product   ProductBasicResponse `json:"product"`
	Quantity  int                  `json:"quantity"`
	UnitPrice decimal.Decimal      `json:"unit_price"`
	Subtotal  decimal.Decimal      `json:"subtotal"`
	TaxTotal  decimal.Decimal      `json:"tax_total"`
	Total     decimal.Decimal      `json:"total"`
}

// SaleResponse venta con vista compuesta de sus referencias.
type SaleResponse struct {
	ID            string                `json:"id"`
	Customer      CustomerBasicResponse `json:"customer"`
	User          UserBasicResponse     `json:"user"`
	WarehouseID   string                `json:"warehouse_id"`
	InvoiceNumber string                `json:"invoice_number"`
	SaleDate      time.Time             `json:"sale_date"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	Notes         string                `json:"notes,omitempty"`
	ExternalCode  string                `json:"external_code,omitempty"`
	PaymentStatus string                `json:"payment_status"`
	Lines         []SaleLineResponse    `json:"lines"`
}
