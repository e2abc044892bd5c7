package logger

import (
	"io"
	log "log/slog"
	"os"
	"strings"
)

// LogWriter gin 访问日志的输出目标
var LogWriter io.Writer = os.Stdout

// InitLogger 安装 JSON 格式的默认 slog，附带 trace_id
func InitLogger(level string) {
	handler := log.NewJSONHandler(LogWriter, &log.HandlerOptions{Level: ParseLevel(level)})
	log.SetDefault(log.New(&ContextHandler{handler}))
}

// ParseLevel 未识别的级别按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
