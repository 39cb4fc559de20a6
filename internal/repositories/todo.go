// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"todo-service/internal/database"
	"todo-service/internal/models"
)

var (
	// ErrTodoNotFound はTODOが見つからない場合のエラーです。
	ErrTodoNotFound = errors.New("todo not found")
	// ErrInvalidTodo はスキーマの制約 (title の NOT NULL / 空文字禁止) に違反した場合のエラーです。
	ErrInvalidTodo = errors.New("todo violates schema constraints")
)

// TodoRepository は todos テーブルへの CRUD を行います。
// 各メソッドはプールから1接続を取り出し、1文だけ実行します。
type TodoRepository struct {
	DB      *sql.DB
	dialect database.Dialect
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB, dialect database.Dialect) *TodoRepository {
	return &TodoRepository{DB: db, dialect: dialect}
}

// Create は新しいTodoタスクを挿入し、採番されたIDをセットして返します。
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	query := "INSERT INTO todos (title, is_completed) VALUES (?, ?)"

	// Postgres の pgx ドライバは LastInsertId をサポートしないため RETURNING を使う
	if r.dialect == database.Postgres {
		var id int64
		err := r.DB.QueryRowContext(ctx, r.dialect.Rebind(query+" RETURNING id"), t.Title, t.IsCompleted).Scan(&id)
		if err != nil {
			return nil, classify(err, "could not insert todo")
		}
		t.ID = id
		return t, nil
	}

	result, err := r.DB.ExecContext(ctx, query, t.Title, t.IsCompleted)
	if err != nil {
		return nil, classify(err, "could not insert todo")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = id
	return t, nil
}

// FindAll はすべてのTodoをID昇順で取得します。
func (r *TodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	query := "SELECT id, title, is_completed FROM todos ORDER BY id ASC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.IsCompleted); err != nil {
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}
	return todos, nil
}

// FindByID は指定されたIDのTodoを取得します。
func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	query := r.dialect.Rebind("SELECT id, title, is_completed FROM todos WHERE id = ?")

	var t models.Todo
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.IsCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return &t, nil
}

// Update は指定されたIDの行の全フィールドを置き換えます。
func (r *TodoRepository) Update(ctx context.Context, id int64, t *models.Todo) (*models.Todo, error) {
	query := r.dialect.Rebind("UPDATE todos SET title = ?, is_completed = ? WHERE id = ?")

	result, err := r.DB.ExecContext(ctx, query, t.Title, t.IsCompleted, id)
	if err != nil {
		return nil, classify(err, "could not update todo")
	}

	// MySQL は clientFoundRows を有効にしているので、一致した行数が返る
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	t.ID = id
	return t, nil
}

// Delete は指定されたIDのTodoを削除します。
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	query := r.dialect.Rebind("DELETE FROM todos WHERE id = ?")

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("could not delete todo: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// Count はテーブルの行数を返します。シードの要否判定に使います。
func (r *TodoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos").Scan(&n); err != nil {
		return 0, fmt.Errorf("could not count todos: %w", err)
	}
	return n, nil
}

// classify はドライバのエラーのうち、制約違反を ErrInvalidTodo に変換します。
func classify(err error, msg string) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		// 1048: Column cannot be null, 1406: Data too long, 3819: Check constraint is violated
		if mysqlErr.Number == 1048 || mysqlErr.Number == 1406 || mysqlErr.Number == 3819 {
			return fmt.Errorf("%s: %w", msg, errors.Join(ErrInvalidTodo, err))
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23502: not_null_violation, 23514: check_violation
		if pgErr.Code == "23502" || pgErr.Code == "23514" {
			return fmt.Errorf("%s: %w", msg, errors.Join(ErrInvalidTodo, err))
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
