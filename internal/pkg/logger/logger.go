package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config: настройки логгера. Переменные: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FORMAT, CALCULATOR_LOG_FILE.
// File пустой: пишем только в stderr.
type Config struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
	File   string `envconfig:"FILE" default:""`
}

// writer возвращает stderr или, если задан файл, файл + stderr.
// При ошибке открытия файла пишем только в stderr.
func writer(file string, console bool) io.Writer {
	if file == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	if !console {
		return f
	}
	return io.MultiWriter(f, os.Stderr)
}

// ParseLevel переводит строку уровня (debug, info, warn, error) в slog.Level. Неизвестное: Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New возвращает логгер по конфигу: text или json, в stderr и опционально в файл.
func New(cfg Config) *slog.Logger {
	return NewWriter(writer(cfg.File, true), cfg)
}

// NewFileOnly пишет только в файл из конфига, без stderr (терминал занят интерфейсом).
// Если файл не задан, логи отбрасываются.
func NewFileOnly(cfg Config) *slog.Logger {
	if cfg.File == "" {
		return NewWriter(io.Discard, cfg)
	}
	return NewWriter(writer(cfg.File, false), cfg)
}

// NewWriter собирает логгер поверх произвольного writer.
func NewWriter(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
