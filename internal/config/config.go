// Package config はサービスの設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config はプロセス起動時に一度だけ読み込まれる設定です。
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	DB   DBConfig
	Seed SeedConfig
	Docs DocsConfig
	Log  LogConfig
	CORS CORSConfig
}

type AppConfig struct {
	Env string `env:"APP_ENV" env-default:"dev"`
}

// IsRelease は gin をリリースモードで動かすべきかを返します。
func (a AppConfig) IsRelease() bool {
	return a.Env != "dev" && a.Env != "test"
}

type HTTPConfig struct {
	Port         string        `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// DBConfig はデータベース接続の設定です。
// DSN が空の場合は DB_USER などの個別の値から組み立てます。
type DBConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"mysql"`
	DSN    string `env:"DB_DSN"`

	User string `env:"DB_USER"`
	Pass string `env:"DB_PASS"`
	Host string `env:"DB_HOST" env-default:"localhost"`
	Port string `env:"DB_PORT"`
	Name string `env:"DB_NAME" env-default:"todos"`

	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

// ConnString は実際にドライバへ渡す接続文字列を返します。
func (c DBConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case "postgres":
		port := c.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Pass, c.Host, port, c.Name)
	default:
		port := c.Port
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", c.User, c.Pass, c.Host, port, c.Name)
	}
}

type SeedConfig struct {
	Enabled bool   `env:"SEED" env-default:"true"`
	File    string `env:"SEED_FILE"`
}

type DocsConfig struct {
	Enabled bool `env:"DOCS_ENABLED" env-default:"true"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Load は環境変数から Config を読み込み、値を検証します。
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate は列挙値の設定が既知のものかを確認します。
func (c *Config) Validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be mysql or postgres, got %q", c.DB.Driver)
	}

	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("LOG_FORMAT must be text, json or logfmt, got %q", c.Log.Format)
	}
	return nil
}
