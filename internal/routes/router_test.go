package routes_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/internal/config"
	"todo-service/internal/handlers"
	"todo-service/internal/logging"
	"todo-service/internal/routes"
	"todo-service/testutil"
)

func setup(t *testing.T, mutate func(*config.Config), db handlers.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testutil.TestConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return routes.SetupRouter(cfg, routes.Dependencies{
		Todos:  testutil.NewMemoryStore(),
		DB:     db,
		Logger: logging.Discard(),
	})
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setup(t, nil, nil)

	w := serve(r, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthDB(t *testing.T) {
	t.Run("not registered without a database", func(t *testing.T) {
		r := setup(t, nil, nil)
		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/health/db").Code)
	})

	t.Run("ping ok", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		w := serve(setup(t, nil, db), http.MethodGet, "/health/db")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping fails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

		w := serve(setup(t, nil, db), http.MethodGet, "/health/db")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"error"}`, w.Body.String())
	})
}

func TestSwaggerToggle(t *testing.T) {
	enabled := setup(t, nil, nil)
	w := serve(enabled, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/v1/todos")
	assert.Contains(t, w.Body.String(), "/v2/todos")
	assert.Equal(t, http.StatusOK, serve(enabled, http.MethodGet, "/swagger/index.html").Code)

	disabled := setup(t, func(c *config.Config) { c.Docs.Enabled = false }, nil)
	assert.Equal(t, http.StatusNotFound, serve(disabled, http.MethodGet, "/swagger/doc.json").Code)
}

func TestOnlyKnownVersionsAreRouted(t *testing.T) {
	r := setup(t, nil, nil)

	for _, v := range routes.APIVersions {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/"+v+"/todos").Code, v)
	}
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/v3/todos").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/todos").Code)
}

func TestCORSPreflight(t *testing.T) {
	r := setup(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/todos", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel, Formatter: log.LogfmtFormatter})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(routes.RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/ok")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "path=/ok")
	assert.Contains(t, buf.String(), "status=200")

	buf.Reset()
	serve(r, http.MethodGet, "/boom")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "status=500")
}
