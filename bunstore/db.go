package bunstore

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenSQLite opens a sqlite-backed bun.DB. Use ":memory:" for throwaway
// databases.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: open sqlite")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// OpenPostgres opens a Postgres-backed bun.DB via lib/pq.
func OpenPostgres(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: open postgres")
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// CreateSchema creates the employees and activities tables if they do not
// exist. Intended for examples and tests; production deployments migrate
// separately.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*EmployeeRecord)(nil),
		(*ActivityRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryExternal, "bunstore: create schema")
		}
	}
	return nil
}
