// Package routesはroutingを行います。
package routes

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "todo-service/docs"
	"todo-service/internal/config"
	"todo-service/internal/handlers"
	"todo-service/internal/services"
)

// APIVersions は /v{n}/todos として公開するバージョンです。すべて同じハンドラーを使います。
var APIVersions = []string{"v1", "v2"}

// Dependencies はルーターが必要とする外部の協力者です。
type Dependencies struct {
	Todos  services.TodoStore
	DB     handlers.Pinger // nil の場合 /health/db は登録しない
	Logger *log.Logger
}

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(cfg config.Config, deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(deps.Logger))

	// CORS対策
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) == 0 || slices.Contains(cfg.CORS.AllowOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{"Location"}
	r.Use(cors.New(corsConfig))

	todoService := services.NewTodoService(deps.Todos)
	todoHandler := handlers.NewTodoHandler(todoService, deps.Logger)

	r.GET("/health", handlers.HealthHandler)
	if deps.DB != nil {
		r.GET("/health/db", handlers.DBCheckHandler(deps.DB, deps.Logger))
	}

	if cfg.Docs.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	for _, version := range APIVersions {
		registerTodoRoutes(r.Group("/"+version), todoHandler)
	}

	return r
}

func registerTodoRoutes(g *gin.RouterGroup, h *handlers.TodoHandler) {
	g.GET("/todos", h.GetTodosHandler)
	g.GET("/todos/:id", h.GetTodoByIDHandler)
	g.POST("/todos", h.CreateTodoHandler)
	g.PUT("/todos/:id", h.UpdateTodoHandler)
	g.DELETE("/todos/:id", h.DeleteTodoHandler)
}
