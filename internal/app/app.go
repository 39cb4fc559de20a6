// Package app は設定からサービス全体を組み立てます。
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-service/internal/config"
	"todo-service/internal/database"
	"todo-service/internal/repositories"
	"todo-service/internal/routes"
	"todo-service/internal/seed"
)

type App struct {
	cfg    config.Config
	db     *sql.DB
	router *gin.Engine
}

// New はDBに接続し、マイグレーションとシードを実行してからルーターを作ります。
// マイグレーションの失敗は回復不能としてエラーを返します。
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, error) {
	if cfg.App.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, dialect, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", "driver", cfg.DB.Driver)

	todoRepo := repositories.NewTodoRepository(db, dialect)
	if err := Bootstrap(ctx, cfg, db, dialect, todoRepo, logger); err != nil {
		db.Close()
		return nil, err
	}

	router := routes.SetupRouter(cfg, routes.Dependencies{
		Todos:  todoRepo,
		DB:     db,
		Logger: logger,
	})
	return &App{cfg: cfg, db: db, router: router}, nil
}

// Bootstrap はマイグレーションを適用し、設定が有効ならシードを投入します。
func Bootstrap(ctx context.Context, cfg config.Config, db *sql.DB, dialect database.Dialect, store seed.Store, logger *log.Logger) error {
	if err := database.Migrate(ctx, db, dialect, logger.WithPrefix("goose")); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if !cfg.Seed.Enabled {
		return nil
	}

	rows, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return err
	}
	if _, err := seed.Run(ctx, store, rows, logger); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close() error {
	return a.db.Close()
}
