package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

// MigrationDir は方言ごとのマイグレーションディレクトリを返します。
func (d Dialect) MigrationDir() string {
	return "migrations/" + string(d)
}

// Migrate は未適用のマイグレーションをすべて適用します。
// logger が nil の場合は goose の標準ロガーを使います。
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, logger goose.Logger) error {
	goose.SetBaseFS(migrations)
	if logger != nil {
		goose.SetLogger(logger)
	}
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dialect.MigrationDir()); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
