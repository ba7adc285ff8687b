// Package migrate runs the embedded goose migrations against a DSN.
package migrate

import (
	"context"
	"database/sql"

	"dealerbid/internal/infra/migrations"
	"dealerbid/internal/pkg/errs"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"
)

func Up(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return errs.Wrap(err, "failed to open migration connection")
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return errs.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}

	return nil
}
