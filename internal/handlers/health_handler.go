// Package handlers は HTTP ハンドラーを提供します。
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-service/internal/dto"
)

// Pinger はデータベースの疎通確認に使います。*sql.DB が実装します。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// DBCheckHandler はデータベース接続の健全性を確認します。
// /health とは別に、ストレージの状態を見たいときだけ使います。
func DBCheckHandler(db Pinger, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("DB ping failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "error"})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
}
