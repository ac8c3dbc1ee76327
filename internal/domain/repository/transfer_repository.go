package repository

import "github.com/sistemas-transaccionales-umb/back/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// UpdateStatus persiste estado y fecha de recibo; las líneas son inmutables.
	UpdateStatus(transfer *entity.Transfer) error
	List(limit, offset int) ([]*entity.Transfer, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error)
}
