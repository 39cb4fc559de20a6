package services

import (
	"context"
	"errors"

	"todo-service/internal/models"
)

// ErrIDMismatch はパスのIDとボディのIDが一致しない場合のエラーです。
var ErrIDMismatch = errors.New("id mismatch")

// TodoStore はTodoの永続化を担うゲートウェイです。
// repositories.TodoRepository が実装します。
type TodoStore interface {
	Create(ctx context.Context, t *models.Todo) (*models.Todo, error)
	FindAll(ctx context.Context) ([]*models.Todo, error)
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	Update(ctx context.Context, id int64, t *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// TodoService はTodo関連のビジネスロジックを扱います。
type TodoService struct {
	todoRepo TodoStore
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo TodoStore) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// CreateTodo は新しいTodoを作成します。IDはストレージが採番します。
func (s *TodoService) CreateTodo(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	todo.ID = 0
	return s.todoRepo.Create(ctx, todo)
}

// GetTodos はすべてのTodoをID昇順で取得します。
func (s *TodoService) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(ctx context.Context, id int64) (*models.Todo, error) {
	return s.todoRepo.FindByID(ctx, id)
}

// UpdateTodo はTodoを全体置換します。
// ボディのIDがパスのIDと異なる場合はストレージに触れずに ErrIDMismatch を返します。
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, todo *models.Todo) (*models.Todo, error) {
	if todo.ID != id {
		return nil, ErrIDMismatch
	}
	return s.todoRepo.Update(ctx, id, todo)
}

// DeleteTodo は指定IDのTodoを削除します。
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	return s.todoRepo.Delete(ctx, id)
}
