package rowmap

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

var (
	stringType     = reflect.TypeFor[string]()
	nullStringType = reflect.TypeFor[sql.NullString]()
)

// textTypeMarkers identify character column types by their database type name.
var textTypeMarkers = []string{"CHAR", "TEXT", "CLOB", "STRING", "JSON", "XML", "ENUM"}

// SQLCursor adapts *sql.Rows to Cursor.
type SQLCursor struct {
	rows    *sql.Rows
	columns []string
	values  []any
	dest    []any
	// text marks character columns whose []byte values are reported as string.
	text []bool
	err  error
}

// NewSQLCursor wraps rows. The cursor takes ownership of rows and closes them.
func NewSQLCursor(rows *sql.Rows) *SQLCursor {
	c := &SQLCursor{rows: rows}

	columns, err := rows.Columns()
	if err != nil {
		c.err = fmt.Errorf("reading columns: %w", err)
		return c
	}

	c.columns = columns
	c.values = make([]any, len(columns))
	c.dest = make([]any, len(columns))
	c.text = make([]bool, len(columns))

	for i := range c.values {
		c.dest[i] = &c.values[i]
	}

	// Column types are optional; without them values are passed through as scanned.
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			c.text[i] = isTextColumn(ct)
		}
	}

	return c
}

func isTextColumn(ct *sql.ColumnType) bool {
	if st := ct.ScanType(); st == stringType || st == nullStringType {
		return true
	}

	name := strings.ToUpper(ct.DatabaseTypeName())
	for _, marker := range textTypeMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}

	return false
}

// Queryer is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// QueryContext runs query on db and materializes every returned row into T.
func QueryContext[T any](ctx context.Context, db Queryer, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return Materialize[T](NewSQLCursor(rows))
}

// FieldCount implements Cursor.
func (c *SQLCursor) FieldCount() int {
	return len(c.columns)
}

// Name implements Cursor.
func (c *SQLCursor) Name(i int) string {
	return c.columns[i]
}

// Value implements Cursor.
func (c *SQLCursor) Value(i int) any {
	switch v := c.values[i].(type) {
	case nil:
		return DBNull
	case []byte:
		if c.text[i] {
			return string(v)
		}

		return v
	default:
		return v
	}
}

// Next implements Cursor.
func (c *SQLCursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}

	clear(c.values)

	if err := c.rows.Scan(c.dest...); err != nil {
		c.err = fmt.Errorf("scanning row: %w", err)
		return false
	}

	return true
}

// Err implements Cursor.
func (c *SQLCursor) Err() error {
	if c.err != nil {
		return c.err
	}

	return c.rows.Err()
}

// Close implements Cursor.
func (c *SQLCursor) Close() error {
	return c.rows.Close()
}
