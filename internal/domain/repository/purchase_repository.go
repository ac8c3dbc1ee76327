package repository

import (
	"time"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para órdenes de compra.
// Create inserta cabecera y líneas; GetByID siempre devuelve la orden con líneas.
type PurchaseRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	ExistsByNumber(number string) (bool, error)
	// UpdateStatus persiste el estado y las notas (los totales y líneas son inmutables).
	UpdateStatus(order *entity.PurchaseOrder) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.PurchaseOrder, error)
}
