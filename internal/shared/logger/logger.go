package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"talenthub/internal/shared/config"
)

var (
	Logger      *slog.Logger
	atomicLevel *slog.LevelVar
)

// Init configures the process-wide logger from configuration. Console
// output goes through tint with color when attached to a terminal; the
// json format is intended for log shippers.
func Init(cfg *config.LoggerConfig) error {
	atomicLevel = new(slog.LevelVar)
	atomicLevel.Set(parseLevel(cfg.Level))

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writer = file
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: atomicLevel})
	} else {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      atomicLevel,
			TimeFormat: time.DateTime,
			NoColor:    !isTerminal(writer),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetLevel adjusts the log level at runtime.
func SetLevel(level slog.Level) {
	if atomicLevel != nil {
		atomicLevel.Set(level)
	}
}

// Get returns the configured logger, initializing a sensible console
// default when Init has not been called (tests, early startup).
func Get() *slog.Logger {
	if Logger == nil {
		handler := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.DateTime,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
		Logger = slog.New(handler)
		slog.SetDefault(Logger)
	}
	return Logger
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}
