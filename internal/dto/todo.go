// Package dto は HTTP の入出力と models の変換を扱います。
package dto

import "todo-service/internal/models"

// CreateTodoRequest は POST /todos のリクエストボディです。
type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	IsCompleted bool   `json:"isCompleted"`
}

// Todo は作成するTodoを返します。
func (r *CreateTodoRequest) Todo() *models.Todo {
	return &models.Todo{Title: r.Title, IsCompleted: r.IsCompleted}
}

// UpdateTodoRequest は PUT /todos/{id} のリクエストボディです。id を含む全体置換です。
// title はここでは検証しません。空の title はストレージの制約で ErrInvalidTodo になります。
type UpdateTodoRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Todo は置換後のTodoを返します。
func (r *UpdateTodoRequest) Todo() *models.Todo {
	return &models.Todo{ID: r.ID, Title: r.Title, IsCompleted: r.IsCompleted}
}

// TodoResponse はTodoのレスポンスです。
type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// NewTodoResponse は models.Todo をレスポンスに変換します。
func NewTodoResponse(t *models.Todo) TodoResponse {
	return TodoResponse{ID: t.ID, Title: t.Title, IsCompleted: t.IsCompleted}
}

// NewTodoListResponse は空の場合も nil ではなく [] になるスライスを返します。
func NewTodoListResponse(todos []*models.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, NewTodoResponse(t))
	}
	return out
}

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse はヘルスチェックのレスポンスです。
type HealthResponse struct {
	Status string `json:"status"`
}
