package transfers

import (
	"context"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de stock, movimientos y traslados atados a esa tx. Cada fase del traslado
// (crear, procesar, recibir) es su propia unidad atómica; entre fases el
// traslado puede quedar IN_TRANSIT indefinidamente.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
