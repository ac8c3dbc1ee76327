package memrepo

import (
	"fmt"
	"time"

	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.TransferRepository = (*TransferRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

// PurchaseRepo órdenes de compra en memoria.
type PurchaseRepo struct {
	orders map[string]*entity.PurchaseOrder
	byNum  map[string]string // número -> id
}

// NewPurchaseRepo crea el repositorio vacío.
func NewPurchaseRepo() *PurchaseRepo {
	return &PurchaseRepo{orders: make(map[string]*entity.PurchaseOrder), byNum: make(map[string]string)}
}

func clonePurchase(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	c.Lines = append([]entity.PurchaseLine(nil), o.Lines...)
	return &c
}

func (r *PurchaseRepo) Create(order *entity.PurchaseOrder) error {
	if _, ok := r.byNum[order.Number]; ok {
		return fmt.Errorf("número de compra %s: %w", order.Number, domain.ErrDuplicate)
	}
	r.orders[order.ID] = clonePurchase(order)
	r.byNum[order.Number] = order.ID
	return nil
}

func (r *PurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return clonePurchase(o), nil
}

func (r *PurchaseRepo) ExistsByNumber(number string) (bool, error) {
	_, ok := r.byNum[number]
	return ok, nil
}

func (r *PurchaseRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	stored, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("compra %s: %w", order.ID, domain.ErrNotFound)
	}
	stored.Status = order.Status
	stored.Notes = order.Notes
	return nil
}

func (r *PurchaseRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(func(*entity.PurchaseOrder) bool { return true }, limit, offset), nil
}

func (r *PurchaseRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(func(o *entity.PurchaseOrder) bool { return o.SupplierID == supplierID }, limit, offset), nil
}

func (r *PurchaseRepo) ListByStatus(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(func(o *entity.PurchaseOrder) bool { return o.Status == status }, limit, offset), nil
}

func (r *PurchaseRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(func(o *entity.PurchaseOrder) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	}, limit, offset), nil
}

func (r *PurchaseRepo) list(match func(*entity.PurchaseOrder) bool, limit, offset int) []*entity.PurchaseOrder {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if match(o) {
			out = append(out, clonePurchase(o))
		}
	}
	return page(out, limit, offset)
}

type purchaseState struct {
	orders map[string]*entity.PurchaseOrder
	byNum  map[string]string
}

func (r *PurchaseRepo) snapshot() purchaseState {
	s := purchaseState{orders: make(map[string]*entity.PurchaseOrder, len(r.orders)), byNum: make(map[string]string, len(r.byNum))}
	for k, v := range r.orders {
		s.orders[k] = clonePurchase(v)
	}
	for k, v := range r.byNum {
		s.byNum[k] = v
	}
	return s
}

func (r *PurchaseRepo) restore(s purchaseState) {
	r.orders = s.orders
	r.byNum = s.byNum
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria.
type SaleRepo struct {
	sales     map[string]*entity.Sale
	byInvoice map[string]string
}

// NewSaleRepo crea el repositorio vacío.
func NewSaleRepo() *SaleRepo {
	return &SaleRepo{sales: make(map[string]*entity.Sale), byInvoice: make(map[string]string)}
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Lines = append([]entity.SaleLine(nil), s.Lines...)
	return &c
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	if _, ok := r.byInvoice[sale.InvoiceNumber]; ok {
		return fmt.Errorf("factura %s: %w", sale.InvoiceNumber, domain.ErrDuplicate)
	}
	r.sales[sale.ID] = cloneSale(sale)
	r.byInvoice[sale.InvoiceNumber] = sale.ID
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(s), nil
}

func (r *SaleRepo) ExistsByInvoiceNumber(number string) (bool, error) {
	_, ok := r.byInvoice[number]
	return ok, nil
}

func (r *SaleRepo) UpdatePaymentStatus(id, status string) error {
	stored, ok := r.sales[id]
	if !ok {
		return fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	stored.PaymentStatus = status
	return nil
}

func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	return r.list(func(*entity.Sale) bool { return true }, limit, offset), nil
}

func (r *SaleRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error) {
	return r.list(func(s *entity.Sale) bool { return s.CustomerID == customerID }, limit, offset), nil
}

func (r *SaleRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	return r.list(func(s *entity.Sale) bool {
		return !s.SaleDate.Before(from) && !s.SaleDate.After(to)
	}, limit, offset), nil
}

func (r *SaleRepo) list(match func(*entity.Sale) bool, limit, offset int) []*entity.Sale {
	var out []*entity.Sale
	for _, s := range r.sales {
		if match(s) {
			out = append(out, cloneSale(s))
		}
	}
	return page(out, limit, offset)
}

// Count devuelve cuántas ventas hay persistidas.
func (r *SaleRepo) Count() int { return len(r.sales) }

type saleState struct {
	sales     map[string]*entity.Sale
	byInvoice map[string]string
}

func (r *SaleRepo) snapshot() saleState {
	s := saleState{sales: make(map[string]*entity.Sale, len(r.sales)), byInvoice: make(map[string]string, len(r.byInvoice))}
	for k, v := range r.sales {
		s.sales[k] = cloneSale(v)
	}
	for k, v := range r.byInvoice {
		s.byInvoice[k] = v
	}
	return s
}

func (r *SaleRepo) restore(s saleState) {
	r.sales = s.sales
	r.byInvoice = s.byInvoice
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

// TransferRepo traslados en memoria.
type TransferRepo struct {
	transfers map[string]*entity.Transfer
}

// NewTransferRepo crea el repositorio vacío.
func NewTransferRepo() *TransferRepo {
	return &TransferRepo{transfers: make(map[string]*entity.Transfer)}
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	c := *t
	c.Lines = append([]entity.TransferLine(nil), t.Lines...)
	if t.ReceivedAt != nil {
		at := *t.ReceivedAt
		c.ReceivedAt = &at
	}
	return &c
}

func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	r.transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(t), nil
}

func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	stored, ok := r.transfers[transfer.ID]
	if !ok {
		return fmt.Errorf("traslado %s: %w", transfer.ID, domain.ErrNotFound)
	}
	stored.Status = transfer.Status
	if transfer.ReceivedAt != nil {
		at := *transfer.ReceivedAt
		stored.ReceivedAt = &at
	}
	return nil
}

func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	return r.list(func(*entity.Transfer) bool { return true }, limit, offset), nil
}

func (r *TransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error) {
	return r.list(func(t *entity.Transfer) bool { return t.Status == status }, limit, offset), nil
}

func (r *TransferRepo) list(match func(*entity.Transfer) bool, limit, offset int) []*entity.Transfer {
	var out []*entity.Transfer
	for _, t := range r.transfers {
		if match(t) {
			out = append(out, cloneTransfer(t))
		}
	}
	return page(out, limit, offset)
}

func (r *TransferRepo) snapshot() map[string]*entity.Transfer {
	s := make(map[string]*entity.Transfer, len(r.transfers))
	for k, v := range r.transfers {
		s[k] = cloneTransfer(v)
	}
	return s
}

func (r *TransferRepo) restore(s map[string]*entity.Transfer) {
	r.transfers = s
}
