// Package database はデータベース接続とマイグレーションを扱います。
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"todo-service/internal/config"
)

// Dialect は SQL の方言 (goose の dialect 名と一致) を表します。
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// DialectFor は DB_DRIVER の値から Dialect を決めます。
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return MySQL, nil
	case "postgres", "pgx":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// DriverName は database/sql に登録されたドライバ名を返します。
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "mysql"
}

// Rebind は ? プレースホルダーを方言に合わせて書き換えます。
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// MySQLDSN は parseTime と clientFoundRows を有効にした DSN を返します。
// clientFoundRows がないと、値が変わらない UPDATE の RowsAffected が 0 になります。
func MySQLDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	mc.ParseTime = true
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// Open はデータベース接続プールを初期化し、疎通を確認します。
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	dsn := cfg.ConnString()
	if dialect == MySQL {
		if dsn, err = MySQLDSN(dsn); err != nil {
			return nil, "", err
		}
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("ping database: %w", err)
	}
	return db, dialect, nil
}
