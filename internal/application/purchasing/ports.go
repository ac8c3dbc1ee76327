package purchasing

import (
	"context"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de stock, movimientos y compras atados a esa tx. La recepción de una compra
// muta varias filas de stock y debe confirmar o revertir como una sola unidad.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
