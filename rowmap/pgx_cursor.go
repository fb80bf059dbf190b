package rowmap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PgxCursor adapts pgx.Rows to Cursor.
type PgxCursor struct {
	rows    pgx.Rows
	columns []string
	values  []any
	err     error
}

// NewPgxCursor wraps rows. The cursor takes ownership of rows and closes them.
func NewPgxCursor(rows pgx.Rows) *PgxCursor {
	fds := rows.FieldDescriptions()

	columns := make([]string, len(fds))
	for i, fd := range fds {
		columns[i] = fd.Name
	}

	return &PgxCursor{rows: rows, columns: columns}
}

// PgxQueryer is implemented by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type PgxQueryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Query runs sql on db and materializes every returned row into T.
func Query[T any](ctx context.Context, db PgxQueryer, sql string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	return Materialize[T](NewPgxCursor(rows))
}

// FieldCount implements Cursor.
func (c *PgxCursor) FieldCount() int {
	return len(c.columns)
}

// Name implements Cursor.
func (c *PgxCursor) Name(i int) string {
	return c.columns[i]
}

// Value implements Cursor.
func (c *PgxCursor) Value(i int) any {
	if c.values[i] == nil {
		return DBNull
	}

	return c.values[i]
}

// Next implements Cursor.
func (c *PgxCursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}

	values, err := c.rows.Values()
	if err != nil {
		c.err = fmt.Errorf("decoding row: %w", err)
		return false
	}

	c.values = values

	return true
}

// Err implements Cursor.
func (c *PgxCursor) Err() error {
	if c.err != nil {
		return c.err
	}

	return c.rows.Err()
}

// Close implements Cursor. Errors surface through Err.
func (c *PgxCursor) Close() error {
	c.rows.Close()
	return nil
}
