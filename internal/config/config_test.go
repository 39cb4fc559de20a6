package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv は t.Setenv で元の値の復元を登録してから変数を消します。
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "DB_DRIVER", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME", "HTTP_READ_TIMEOUT",
		"SEED", "DOCS_ENABLED", "LOG_FORMAT", "CORS_ALLOW_ORIGINS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.True(t, cfg.Seed.Enabled, "seeding is on unless disabled")
	assert.True(t, cfg.Docs.Enabled)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/todos")
	t.Setenv("SEED", "false")
	t.Setenv("DOCS_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/todos", cfg.DB.ConnString())
	assert.False(t, cfg.Seed.Enabled)
	assert.False(t, cfg.Docs.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowOrigins)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestDBConfig_ConnString(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBConfig
		want string
	}{
		{
			name: "explicit DSN wins",
			cfg:  DBConfig{Driver: "mysql", DSN: "root@tcp(db:3306)/x", User: "ignored"},
			want: "root@tcp(db:3306)/x",
		},
		{
			name: "mysql from parts",
			cfg:  DBConfig{Driver: "mysql", User: "app", Pass: "secret", Host: "db", Name: "todos"},
			want: "app:secret@tcp(db:3306)/todos",
		},
		{
			name: "postgres from parts",
			cfg:  DBConfig{Driver: "postgres", User: "postgres", Pass: "postgres", Host: "pg", Port: "6543", Name: "todos"},
			want: "postgres://postgres:postgres@pg:6543/todos?sslmode=disable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ConnString())
		})
	}
}

func TestAppConfig_IsRelease(t *testing.T) {
	assert.False(t, AppConfig{Env: "dev"}.IsRelease())
	assert.False(t, AppConfig{Env: "test"}.IsRelease())
	assert.True(t, AppConfig{Env: "production"}.IsRelease())
}
