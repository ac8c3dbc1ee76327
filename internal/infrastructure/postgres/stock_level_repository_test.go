package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de Querier para inspeccionar el SQL emitido
// ──────────────────────────────────────────────────────────────────────────────

type sqlCall struct {
	sql  string
	args []any
}

// fakeQuerier registra cada llamada y responde con el scan configurado.
type fakeQuerier struct {
	calls []sqlCall
	scan  func(dest ...any) error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, sqlCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, sqlCall{sql: sql, args: args})
	return emptyRows{}, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, sqlCall{sql: sql, args: args})
	return rowFunc(f.scan)
}

type rowFunc func(dest ...any) error

func (fn rowFunc) Scan(dest ...any) error { return fn(dest...) }

// emptyRows es un pgx.Rows sin filas.
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return pgx.ErrNoRows }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// GetForUpdate
// ──────────────────────────────────────────────────────────────────────────────

// Antes de bloquear, GetForUpdate debe asegurar la fila: FOR UPDATE no bloquea
// filas ausentes y dos transacciones concurrentes sobre un par nuevo leerían
// ambas cantidad 0, perdiendo uno de los dos incrementos.
func TestGetForUpdate_AseguraLaFilaAntesDeBloquear(t *testing.T) {
	q := &fakeQuerier{scan: func(dest ...any) error {
		*(dest[0].(*string)) = "prod-1"
		*(dest[1].(*string)) = "wh-1"
		*(dest[2].(*int)) = 0
		*(dest[3].(*int)) = 0
		*(dest[4].(*time.Time)) = time.Now()
		return nil
	}}
	repo := postgres.NewStockLevelRepository(q)

	level, err := repo.GetForUpdate("prod-1", "wh-1")
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, 0, level.Quantity)

	require.Len(t, q.calls, 2, "primero el INSERT que asegura la fila, luego el SELECT que la bloquea")

	ensure := q.calls[0].sql
	assert.Contains(t, ensure, "INSERT INTO stock_levels")
	assert.Contains(t, ensure, "ON CONFLICT (product_id, warehouse_id) DO NOTHING")
	assert.Equal(t, []any{"prod-1", "wh-1"}, q.calls[0].args)

	lock := q.calls[1].sql
	assert.Contains(t, lock, "FOR UPDATE")
	assert.Equal(t, []any{"prod-1", "wh-1"}, q.calls[1].args)

	assert.True(t, strings.Index(ensure, "INSERT") >= 0 && !strings.Contains(ensure, "FOR UPDATE"),
		"el INSERT de aseguramiento no debe llevar FOR UPDATE")
}

// Get es solo lectura: no debe insertar filas ni bloquear.
func TestGet_NivelAusente_RetornaNilSinInsertar(t *testing.T) {
	q := &fakeQuerier{scan: func(...any) error { return pgx.ErrNoRows }}
	repo := postgres.NewStockLevelRepository(q)

	level, err := repo.Get("prod-1", "wh-1")
	require.NoError(t, err)
	assert.Nil(t, level)

	require.Len(t, q.calls, 1)
	assert.NotContains(t, q.calls[0].sql, "INSERT")
	assert.NotContains(t, q.calls[0].sql, "FOR UPDATE")
}
