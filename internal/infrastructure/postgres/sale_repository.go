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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = "id, customer_id, user_id, warehouse_id, invoice_number, sale_date, discount, total, notes, external_code, payment_status"

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta y sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.UserID, sale.WarehouseID, sale.InvoiceNumber,
		sale.SaleDate, sale.Discount, sale.Total, nullIfEmpty(sale.Notes),
		nullIfEmpty(sale.ExternalCode), sale.PaymentStatus,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %s: %w", sale.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	lineQuery := `
		INSERT INTO sale_lines (id, sale_id, line_number, product_id, quantity, unit_price, subtotal, tax_total, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range sale.Lines {
		line := &sale.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, sale.ID, i+1, line.ProductID, line.Quantity,
			line.UnitPrice, line.Subtotal, line.TaxTotal, line.Total,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta completa (cabecera y líneas) por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil || sale == nil {
		return sale, err
	}
	if err := r.loadLines(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ExistsByInvoiceNumber verifica si ya existe una venta con ese número de factura.
func (r *SaleRepo) ExistsByInvoiceNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM sales WHERE invoice_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists sale by invoice number: %w", err)
	}
	return exists, nil
}

// UpdatePaymentStatus actualiza solo el estado de pago.
func (r *SaleRepo) UpdatePaymentStatus(id, status string) error {
	query := `UPDATE sales SET payment_status = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

// List lista ventas con paginación, más reciente primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByCustomer lista ventas de un cliente.
func (r *SaleRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE customer_id = $1 ORDER BY sale_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, customerID, limit, offset)
}

// ListByDateRange lista ventas en un rango de fechas.
func (r *SaleRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE sale_date >= $1 AND sale_date <= $2
		ORDER BY sale_date DESC LIMIT $3 OFFSET $4`
	return r.list(query, from, to, limit, offset)
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, sale := range list {
		if err := r.loadLines(sale); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *SaleRepo) loadLines(sale *entity.Sale) error {
	query := `
		SELECT id, product_id, quantity, unit_price, subtotal, tax_total, total
		FROM sale_lines WHERE sale_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, sale.ID)
	if err != nil {
		return fmt.Errorf("load sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity,
			&l.UnitPrice, &l.Subtotal, &l.TaxTotal, &l.Total); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		sale.Lines = append(sale.Lines, l)
	}
	return rows.Err()
}

func scanSale(row pgxScanner) (*entity.Sale, error) {
	var s entity.Sale
	var notes, externalCode *string
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.UserID, &s.WarehouseID, &s.InvoiceNumber,
		&s.SaleDate, &s.Discount, &s.Total, &notes, &externalCode, &s.PaymentStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if notes != nil {
		s.Notes = *notes
	}
	if externalCode != nil {
		s.ExternalCode = *externalCode
	}
	return &s, nil
}
