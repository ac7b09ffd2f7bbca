package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init varsayılan slog logger'ı tint handler ile kurar
func Init(level slog.Level) *slog.Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}
