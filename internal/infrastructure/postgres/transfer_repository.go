package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = "id, source_warehouse_id, destination_warehouse_id, user_id, notes, status, requested_at, received_at"

// TransferRepo implementación de TransferRepository (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste la cabecera del traslado y sus líneas.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.SourceID, transfer.DestinationID, transfer.UserID,
		nullIfEmpty(transfer.Notes), transfer.Status, transfer.RequestedAt, transfer.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	lineQuery := `
		INSERT INTO transfer_lines (id, transfer_id, line_number, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range transfer.Lines {
		line := &transfer.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, transfer.ID, i+1, line.ProductID, line.Quantity)
		if err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado completo (cabecera y líneas) por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	transfer, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil || transfer == nil {
		return transfer, err
	}
	if err := r.loadLines(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// UpdateStatus persiste estado y fecha de recibo. Las líneas son inmutables.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	query := `UPDATE transfers SET status = $2, received_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, transfer.ID, transfer.Status, transfer.ReceivedAt)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// List lista traslados con paginación, más reciente primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers ORDER BY requested_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByStatus lista traslados por estado.
func (r *TransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE status = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

func (r *TransferRepo) list(query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, transfer := range list {
		if err := r.loadLines(transfer); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TransferRepo) loadLines(transfer *entity.Transfer) error {
	query := `SELECT id, product_id, quantity FROM transfer_lines WHERE transfer_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, transfer.ID)
	if err != nil {
		return fmt.Errorf("load transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		transfer.Lines = append(transfer.Lines, l)
	}
	return rows.Err()
}

func scanTransfer(row pgxScanner) (*entity.Transfer, error) {
	var t entity.Transfer
	var notes *string
	err := row.Scan(
		&t.ID, &t.SourceID, &t.DestinationID, &t.UserID,
		&notes, &t.Status, &t.RequestedAt, &t.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	if notes != nil {
		t.Notes = *notes
	}
	return &t, nil
}
