// Package seed は起動時のデモデータ投入を行います。
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"todo-service/internal/models"
)

// Row はシードする1件分のTodoです。SEED_FILE の JSON 要素と同じ形です。
type Row struct {
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Defaults は SEED_FILE が指定されていない場合に投入する行です。
var Defaults = []Row{
	{Title: "Купить кофе", IsCompleted: false},
	{Title: "Проверить Swagger", IsCompleted: false},
	{Title: "Написать юнит-тест", IsCompleted: true},
}

// Store はシードに必要なゲートウェイの操作です。
type Store interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *models.Todo) (*models.Todo, error)
}

// Load は path の JSON 配列を読み込みます。path が空なら Defaults を返します。
func Load(path string) ([]Row, error) {
	if path == "" {
		return Defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return rows, nil
}

// Run はテーブルが空のときだけ rows を挿入し、挿入した件数を返します。
func Run(ctx context.Context, store Store, rows []Row, logger *log.Logger) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Debug("seed skipped, table not empty", "rows", n)
		return 0, nil
	}

	for i, row := range rows {
		if _, err := store.Create(ctx, &models.Todo{Title: row.Title, IsCompleted: row.IsCompleted}); err != nil {
			return i, fmt.Errorf("seed row %d: %w", i, err)
		}
	}
	logger.Info("seeded todos", "count", len(rows))
	return len(rows), nil
}
