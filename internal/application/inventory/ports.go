package inventory

import (
	"context"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios de stock y movimientos atados a esa tx. Garantiza que la
// mutación del nivel y el registro del movimiento comparten unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
	) error) error
}
