package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = "id, supplier_id, user_id, number, order_date, subtotal, tax_total, total, status, notes, created_at"

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de la orden y sus líneas.
func (r *PurchaseRepo) Create(order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.UserID, order.Number, order.OrderDate,
		order.Subtotal, order.TaxTotal, order.Total, order.Status,
		nullIfEmpty(order.Notes), order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de compra %s: %w", order.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_lines (id, purchase_id, line_number, product_id, warehouse_id, quantity, unit_cost, subtotal, tax_total, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i := range order.Lines {
		line := &order.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, order.ID, i+1, line.ProductID, line.WarehouseID, line.Quantity,
			line.UnitCost, line.Subtotal, line.TaxTotal, line.Total,
		)
		if err != nil {
			return fmt.Errorf("insert purchase line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden completa (cabecera y líneas) por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	order, err := scanPurchase(r.q.QueryRow(context.Background(), query, id))
	if err != nil || order == nil {
		return order, err
	}
	if err := r.loadLines(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ExistsByNumber verifica si ya existe una orden con ese número.
func (r *PurchaseRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM purchases WHERE number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists purchase by number: %w", err)
	}
	return exists, nil
}

// UpdateStatus persiste el estado y las notas. Totales y líneas son inmutables.
func (r *PurchaseRepo) UpdateStatus(order *entity.PurchaseOrder) error {
	query := `UPDATE purchases SET status = $2, notes = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, order.ID, order.Status, nullIfEmpty(order.Notes))
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}

// List lista órdenes con paginación, más reciente primero.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListBySupplier lista órdenes de un proveedor.
func (r *PurchaseRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE supplier_id = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, supplierID, limit, offset)
}

// ListByStatus lista órdenes por estado.
func (r *PurchaseRepo) ListByStatus(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE status = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByDateRange lista órdenes en un rango de fechas.
func (r *PurchaseRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseColumns + ` FROM purchases
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY order_date DESC LIMIT $3 OFFSET $4`
	return r.list(query, from, to, limit, offset)
}

func (r *PurchaseRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		order, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range list {
		if err := r.loadLines(order); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PurchaseRepo) loadLines(order *entity.PurchaseOrder) error {
	query := `
		SELECT id, product_id, warehouse_id, quantity, unit_cost, subtotal, tax_total, total
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, order.ID)
	if err != nil {
		return fmt.Errorf("load purchase lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.WarehouseID, &l.Quantity,
			&l.UnitCost, &l.Subtotal, &l.TaxTotal, &l.Total); err != nil {
			return fmt.Errorf("scan purchase line: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	return rows.Err()
}

func scanPurchase(row pgxScanner) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var notes *string
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.UserID, &o.Number, &o.OrderDate,
		&o.Subtotal, &o.TaxTotal, &o.Total, &o.Status, &notes, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan purchase: %w", err)
	}
	if notes != nil {
		o.Notes = *notes
	}
	return &o, nil
}
