package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para crear una orden de compra (queda PENDING, sin efecto en stock).
type CreatePurchaseRequest struct {
	SupplierID string                      `json:"supplier_id"`
	UserID     string                      `json:"user_id"`
	Number     string                      `json:"number"`
	OrderDate  time.Time                   `json:"order_date"`
	Notes      string                      `json:"notes,omitempty"`
	Lines      []CreatePurchaseLineRequest `json:"lines"`
}

// CreatePurchaseLineRequest línea de la orden de compra.
type CreatePurchaseLineRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CancelPurchaseRequest body opcional para cancelar una compra.
type CancelPurchaseRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SupplierBasicResponse vista mínima del proveedor dentro de una compra.
type SupplierBasicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserBasicResponse vista mínima del usuario dentro de un documento.
type UserBasicResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ProductBasicResponse vista mínima del producto dentro de una línea.
type ProductBasicResponse struct {
	ID      string          `json:"id"`
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// WarehouseBasicResponse vista mínima de la bodega dentro de una línea.
type WarehouseBasicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PurchaseLineResponse línea de compra con totales calculados.
type PurchaseLineResponse struct {
	ID        string                 `json:"id"`
	Product   ProductBasicResponse   `json:"product"`
	Warehouse WarehouseBasicResponse `json:"warehouse"`
	Quantity  int                    `json:"quantity"`
	UnitCost  decimal.Decimal        `json:"unit_cost"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	TaxTotal  decimal.Decimal        `json:"tax_total"`
	Total     decimal.Decimal        `json:"total"`
}

// PurchaseResponse orden de compra con vista compuesta de sus referencias.
type PurchaseResponse struct {
	ID        string                 `json:"id"`
	Supplier  SupplierBasicResponse  `json:"supplier"`
	User      UserBasicResponse      `json:"user"`
	Number    string                 `json:"number"`
	OrderDate time.Time              `json:"order_date"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	TaxTotal  decimal.Decimal        `json:"tax_total"`
	Total     decimal.Decimal        `json:"total"`
	Status    string                 `json:"status"`
	Notes     string                 `json:"notes,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Lines     []PurchaseLineResponse `json:"lines"`
}
