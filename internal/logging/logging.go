// Package logging はプロセス全体で使うロガーを作ります。
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"todo-service/internal/config"
)

// New は設定に従って charmbracelet/log のロガーを作成します。
// 不明なレベルは info として扱います。
func New(cfg config.LogConfig) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

func NewWithWriter(w io.Writer, cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "todo-service",
	})
}

// Discard はテスト用に何も出力しないロガーを返します。
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
