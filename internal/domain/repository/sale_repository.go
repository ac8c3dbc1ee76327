package repository

import (
	"time"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ExistsByInvoiceNumber(number string) (bool, error)
	UpdatePaymentStatus(id, status string) error
	List(limit, offset int) ([]*entity.Sale, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Sale, error)
}
