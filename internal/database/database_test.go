package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("mysql")
	require.NoError(t, err)
	assert.Equal(t, MySQL, d)
	assert.Equal(t, "mysql", d.DriverName())

	d, err = DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)
	assert.Equal(t, "pgx", d.DriverName())

	_, err = DialectFor("sqlite3")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := "UPDATE todos SET title = ?, is_completed = ? WHERE id = ?"

	assert.Equal(t, q, MySQL.Rebind(q))
	assert.Equal(t, "UPDATE todos SET title = $1, is_completed = $2 WHERE id = $3", Postgres.Rebind(q))
	assert.Equal(t, "SELECT 1", Postgres.Rebind("SELECT 1"))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := MySQLDSN("app:secret@tcp(db:3306)/todos")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.True(t, strings.HasPrefix(dsn, "app:secret@tcp(db:3306)/todos"))

	_, err = MySQLDSN("not a dsn")
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, d := range []Dialect{MySQL, Postgres} {
		entries, err := fs.ReadDir(migrations, d.MigrationDir())
		require.NoError(t, err, d)
		require.NotEmpty(t, entries, d)

		body, err := fs.ReadFile(migrations, d.MigrationDir()+"/"+entries[0].Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up")
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS todos")
		assert.Contains(t, string(body), "is_completed")
		assert.NotContains(t, string(body), "VARCHAR", "title must not be length-bounded")
	}
}
