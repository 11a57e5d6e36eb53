package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/adanyl0v/go-todo-client/internal/config"
)

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

// MustInitApplicationLogger switches logging to a rotating file.
// The TUI owns the terminal, so nothing may write to stdout/stderr
// once it starts.
func MustInitApplicationLogger() {
	cfg := config.Global()

	switch cfg.Env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	default:
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic("unknown env: " + cfg.Env)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to resolve user cache dir")
			panic(err)
		}
		logFile = filepath.Join(cacheDir, "go-todo-client", "app.log")
	}

	w := io.Writer(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("file", logFile).
		Msg("initialized application logger")
}
