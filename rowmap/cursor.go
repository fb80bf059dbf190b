package rowmap

import (
	"errors"

	"rowmap-generator/internal/common"
)

// Cursor is a forward-only, read-once tabular result.
//
// Next must be called before the first row is read. Value returns DBNull for
// cells that hold no value. Err reports the error that stopped iteration, if any.
type Cursor interface {
	FieldCount() int
	Name(i int) string
	Value(i int) any
	Next() bool
	Err() error
	Close() error
}

// Null is the type of DBNull.
type Null struct{}

// String implements fmt.Stringer.
func (Null) String() string {
	return "DBNull"
}

// DBNull is the marker cursors return for cells without a value.
var DBNull = Null{}

// IsNull reports whether v is the null marker or nil.
func IsNull(v any) bool {
	if v == nil {
		return true
	}

	_, ok := v.(Null)

	return ok
}

// Value reads cell i of the current row, translating DBNull into nil,
// the absent value understood by setters.
func Value(cur Cursor, i int) any {
	v := cur.Value(i)
	if _, ok := v.(Null); ok {
		return nil
	}

	return v
}

// Key normalizes a property or column name for matching.
func Key(name string) string {
	return common.Key(name)
}

// Keys returns the upper-cased names of the cursor's columns.
func Keys(cur Cursor) []string {
	keys := make([]string, cur.FieldCount())
	for i := range keys {
		keys[i] = Key(cur.Name(i))
	}

	return keys
}

// CloseInto closes cur and joins a close error into *errp.
// It is meant to be deferred by functions that own the cursor.
func CloseInto(cur Cursor, errp *error) {
	if err := cur.Close(); err != nil {
		*errp = errors.Join(*errp, err)
	}
}
