package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-service/internal/dto"
	"todo-service/internal/repositories"
	"todo-service/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
// v1 と v2 の両方のルートグループに同じインスタンスが登録されます。
type TodoHandler struct {
	todoService *services.TodoService
	logger      *log.Logger
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService, logger *log.Logger) *TodoHandler {
	return &TodoHandler{todoService: todoService, logger: logger}
}

// GetTodosHandler godoc
// @Summary      List todos
// @Description  Returns every todo ordered by ascending id.
// @Tags         todos
// @Produce      json
// @Success      200  {array}   dto.TodoResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /v1/todos [get]
// @Router       /v2/todos [get]
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetTodos(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch todos", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoListResponse(todos))
}

// GetTodoByIDHandler godoc
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/todos/{id} [get]
// @Router       /v2/todos/{id} [get]
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, "Failed to fetch todo", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

// CreateTodoHandler godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTodoRequest  true  "Todo"
// @Success      201   {object}  dto.TodoResponse
// @Header       201   {string}  Location  "/todos/{id}"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/todos [post]
// @Router       /v2/todos [post]
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	createdTodo, err := h.todoService.CreateTodo(c.Request.Context(), req.Todo())
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidTodo) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid todo", Details: err.Error()})
			return
		}
		h.internalError(c, "Failed to save todo to database", err)
		return
	}

	c.Header("Location", "/todos/"+strconv.FormatInt(createdTodo.ID, 10))
	c.JSON(http.StatusCreated, dto.NewTodoResponse(createdTodo))
}

// UpdateTodoHandler godoc
// @Summary      Replace a todo
// @Description  Full replacement. The body id must equal the path id.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "Todo"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/todos/{id} [put]
// @Router       /v2/todos/{id} [put]
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(c.Request.Context(), id, req.Todo())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIDMismatch):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Id mismatch"})
		case errors.Is(err, repositories.ErrTodoNotFound):
			notFound(c)
		case errors.Is(err, repositories.ErrInvalidTodo):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid todo", Details: err.Error()})
		default:
			h.internalError(c, "Failed to update todo", err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(updatedTodo))
}

// DeleteTodoHandler godoc
// @Summary      Delete a todo
// @Tags         todos
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/todos/{id} [delete]
// @Router       /v2/todos/{id} [delete]
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			notFound(c)
			return
		}
		h.internalError(c, "Failed to delete todo", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID はパスの id を読み取ります。
// 整数でない id はどのTodoも指さないので 404 とします。
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Todo not found"})
}

func (h *TodoHandler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "err", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
}
