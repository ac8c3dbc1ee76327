package memrepo

import (
	"context"

	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

// TxRunner ejecuta la función contra los repositorios en memoria tomando una
// instantánea previa; si la función devuelve error, restaura el estado igual
// que el rollback de una transacción real.
type TxRunner struct {
	Stock     *StockRepo
	Movements *MovementRepo
	Purchases *PurchaseRepo
	Sales     *SaleRepo
	Transfers *TransferRepo
}

// NewTxRunner crea el runner con todos los repositorios transaccionales.
func NewTxRunner() *TxRunner {
	return &TxRunner{
		Stock:     NewStockRepo(),
		Movements: NewMovementRepo(),
		Purchases: NewPurchaseRepo(),
		Sales:     NewSaleRepo(),
		Transfers: NewTransferRepo(),
	}
}

// Run ejecuta la función con los repositorios de stock y movimientos.
func (t *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
) error) error {
	stock, movs := t.Stock.snapshot(), t.Movements.snapshot()
	if err := fn(t.Stock, t.Movements); err != nil {
		t.Stock.restore(stock)
		t.Movements.restore(movs)
		return err
	}
	return nil
}

// RunPurchase ejecuta la función con los repositorios del flujo de compras.
func (t *TxRunner) RunPurchase(_ context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	stock, movs, purchases := t.Stock.snapshot(), t.Movements.snapshot(), t.Purchases.snapshot()
	if err := fn(t.Stock, t.Movements, t.Purchases); err != nil {
		t.Stock.restore(stock)
		t.Movements.restore(movs)
		t.Purchases.restore(purchases)
		return err
	}
	return nil
}

// RunSale ejecuta la función con los repositorios del flujo de ventas.
func (t *TxRunner) RunSale(_ context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	stock, movs, sales := t.Stock.snapshot(), t.Movements.snapshot(), t.Sales.snapshot()
	if err := fn(t.Stock, t.Movements, t.Sales); err != nil {
		t.Stock.restore(stock)
		t.Movements.restore(movs)
		t.Sales.restore(sales)
		return err
	}
	return nil
}

// RunTransfer ejecuta la función con los repositorios del flujo de traslados.
func (t *TxRunner) RunTransfer(_ context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
) error) error {
	stock, movs, transfers := t.Stock.snapshot(), t.Movements.snapshot(), t.Transfers.snapshot()
	if err := fn(t.Stock, t.Movements, t.Transfers); err != nil {
		t.Stock.restore(stock)
		t.Movements.restore(movs)
		t.Transfers.restore(transfers)
		return err
	}
	return nil
}
