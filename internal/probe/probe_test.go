package probe

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"rowmap-generator/rowmap"
)

func seed(t *testing.T) string {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "probe.db")

	db, err := sql.Open(DriverSQLite, dsn)
	require.NoError(t, err)

	defer db.Close()

	_, err = db.Exec(`CREATE TABLE products (id INTEGER, name TEXT, price_cents INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO products VALUES (1, 'pen', 150), (2, 'ink', NULL)`)
	require.NoError(t, err)

	return dsn
}

func TestColumns_SQLite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dsn := seed(t)

	cols, err := Columns(context.Background(), DriverSQLite, dsn, `SELECT id, name AS Title, price_cents FROM products`)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "Title", "price_cents"}, cols)
}

func TestOpen_SQLiteRows(t *testing.T) {
	defer goleak.VerifyNone(t)

	dsn := seed(t)

	cur, err := Open(context.Background(), DriverSQLite, dsn, `SELECT price_cents FROM products ORDER BY id`)
	require.NoError(t, err)

	var got []any
	for cur.Next() {
		got = append(got, rowmap.Value(cur, 0))
	}

	require.NoError(t, cur.Err())
	require.NoError(t, cur.Close())
	assert.Equal(t, []any{int64(150), nil}, got)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "", "SELECT 1")
	require.ErrorIs(t, err, ErrUnknownDriver)

	_, err = Columns(context.Background(), DriverSQLite, seed(t), `SELECT * FROM missing`)
	require.Error(t, err)
}
