package rowmap

import "fmt"

// SliceCursor is an in-memory Cursor over a fixed set of rows.
type SliceCursor struct {
	columns []string
	rows    [][]any
	pos     int
	closed  bool
	err     error
}

// NewSliceCursor creates a cursor over rows. Nil cells are reported as DBNull.
func NewSliceCursor(columns []string, rows ...[]any) *SliceCursor {
	return &SliceCursor{columns: columns, rows: rows, pos: -1}
}

// FieldCount implements Cursor.
func (c *SliceCursor) FieldCount() int {
	return len(c.columns)
}

// Name implements Cursor.
func (c *SliceCursor) Name(i int) string {
	return c.columns[i]
}

// Value implements Cursor.
func (c *SliceCursor) Value(i int) any {
	row := c.rows[c.pos]
	if i >= len(row) || row[i] == nil {
		return DBNull
	}

	return row[i]
}

// Next implements Cursor.
func (c *SliceCursor) Next() bool {
	if c.closed {
		c.err = fmt.Errorf("rowmap: cursor is closed")
		return false
	}

	if c.pos+1 >= len(c.rows) {
		c.pos = len(c.rows)
		return false
	}

	c.pos++

	return true
}

// Err implements Cursor.
func (c *SliceCursor) Err() error {
	return c.err
}

// Close implements Cursor. Closing twice is allowed.
func (c *SliceCursor) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *SliceCursor) Closed() bool {
	return c.closed
}
