// Package probe runs a query against a live database to learn the column names
// of its result set.
package probe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"rowmap-generator/rowmap"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned for drivers other than DriverSQLite and DriverPostgres.
var ErrUnknownDriver = errors.New("unknown driver")

// Open runs query and returns a cursor over its result set. The caller must close it.
func Open(ctx context.Context, driver, dsn, query string, args ...any) (rowmap.Cursor, error) {
	switch driver {
	case DriverSQLite:
		return openSQL(ctx, driver, dsn, query, args...)
	case DriverPostgres, "pgx":
		return openPgx(ctx, dsn, query, args...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Columns returns the column names of query's result set, in order.
func Columns(ctx context.Context, driver, dsn, query string, args ...any) (_ []string, err error) {
	cur, err := Open(ctx, driver, dsn, query, args...)
	if err != nil {
		return nil, err
	}
	defer rowmap.CloseInto(cur, &err)

	return Names(cur), nil
}

// Names returns the column names of cur, as reported by the driver.
func Names(cur rowmap.Cursor) []string {
	names := make([]string, cur.FieldCount())
	for i := range names {
		names[i] = cur.Name(i)
	}

	return names
}

// sqlCursor closes the database along with the rows.
type sqlCursor struct {
	*rowmap.SQLCursor
	db *sql.DB
}

func (c *sqlCursor) Close() error {
	return errors.Join(c.SQLCursor.Close(), c.db.Close())
}

func openSQL(ctx context.Context, driver, dsn, query string, args ...any) (rowmap.Cursor, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running query: %w", err)
	}

	cur := rowmap.NewSQLCursor(rows)
	if err := cur.Err(); err != nil {
		return nil, errors.Join(err, cur.Close(), db.Close())
	}

	return &sqlCursor{SQLCursor: cur, db: db}, nil
}

// pgxCursor closes the connection along with the rows.
type pgxCursor struct {
	*rowmap.PgxCursor
	conn *pgx.Conn
}

func (c *pgxCursor) Close() error {
	return errors.Join(c.PgxCursor.Close(), c.conn.Close(context.Background()))
}

func openPgx(ctx context.Context, dsn, query string, args ...any) (rowmap.Cursor, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("running query: %w", err)
	}

	return &pgxCursor{PgxCursor: rowmap.NewPgxCursor(rows), conn: conn}, nil
}
