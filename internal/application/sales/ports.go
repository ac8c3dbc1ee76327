package sales

import (
	"context"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de stock, movimientos y ventas atados a esa tx. El descuento de stock línea a
// línea y la inserción de la venta comparten unidad atómica: si una línea
// falla, los descuentos anteriores se revierten.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
