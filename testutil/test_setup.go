package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"todo-service/internal/config"
	"todo-service/internal/database"
	"todo-service/internal/dto"
	"todo-service/internal/logging"
	"todo-service/internal/models"
	"todo-service/internal/repositories"
	"todo-service/internal/routes"
)

// MemoryStore はテスト用のインメモリ実装です。
// repositories.TodoRepository と同じエラーを返します。
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Todo

	// Err が設定されていると、すべての操作がこのエラーを返します。
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[int64]models.Todo)}
}

func (s *MemoryStore) Create(_ context.Context, t *models.Todo) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if t.Title == "" {
		return nil, repositories.ErrInvalidTodo
	}
	s.nextID++
	t.ID = s.nextID
	s.rows[t.ID] = *t
	return t, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	todos := make([]*models.Todo, 0, len(s.rows))
	for _, row := range s.rows {
		row := row
		todos = append(todos, &row)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrTodoNotFound
	}
	return &row, nil
}

func (s *MemoryStore) Update(_ context.Context, id int64, t *models.Todo) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.rows[id]; !ok {
		return nil, repositories.ErrTodoNotFound
	}
	if t.Title == "" {
		return nil, repositories.ErrInvalidTodo
	}
	t.ID = id
	s.rows[id] = *t
	return t, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rows[id]; !ok {
		return repositories.ErrTodoNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.rows)), nil
}

// TestConfig はテスト用の設定を返します。
func TestConfig() config.Config {
	return config.Config{
		App:  config.AppConfig{Env: "test"},
		Docs: config.DocsConfig{Enabled: true},
		CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Log:  config.LogConfig{Level: "error", Format: "text"},
	}
}

// SetupTestRouter はインメモリストアを使うGinルーターをセットアップします。
func SetupTestRouter(t *testing.T) (*gin.Engine, *MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := NewMemoryStore()
	r := routes.SetupRouter(TestConfig(), routes.Dependencies{
		Todos:  store,
		Logger: logging.Discard(),
	})
	return r, store
}

// SetupTestDB はテスト用のデータベースに接続し、マイグレーション後に todos を空にします。
// TEST_DB_DSN が設定されていない場合はテストをスキップします。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *repositories.TodoRepository) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set; skipping database integration test")
	}
	ctx := context.Background()
	cfg := config.DBConfig{Driver: testDBDriver(), DSN: dsn, MaxOpenConns: 5, MaxIdleConns: 5}
	db, dialect, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, db, dialect, nil))
	_, err = db.ExecContext(ctx, "DELETE FROM todos")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	repo := repositories.NewTodoRepository(db, dialect)
	router := routes.SetupRouter(TestConfig(), routes.Dependencies{
		Todos:  repo,
		DB:     db,
		Logger: logging.Discard(),
	})
	return db, router, repo
}

func testDBDriver() string {
	if driver := os.Getenv("TEST_DB_DRIVER"); driver != "" {
		return driver
	}
	return "mysql"
}

// TestDBDialect は SetupTestDB が接続する方言を返します。
func TestDBDialect(t *testing.T) database.Dialect {
	t.Helper()
	dialect, err := database.DialectFor(testDBDriver())
	require.NoError(t, err)
	return dialect
}

// CreateTestTodo は API 経由でTodoを作成し、作成されたTodoを返します。
func CreateTestTodo(t *testing.T, router *gin.Engine, version, title string, completed bool) dto.TodoResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"title":       title,
		"isCompleted": completed,
	})

	req, _ := http.NewRequest(http.MethodPost, "/"+version+"/todos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var created dto.TodoResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return created
}
