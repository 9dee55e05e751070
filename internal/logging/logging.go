package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level     string // debug, info, warn, error
	Dir       string // log directory; empty disables the file sink
	MaxSizeMB int
	MaxAge    int // days
	Pretty    bool
}

// New creates a structured logger writing to the console and, when a
// directory is configured, to a size/age-rotated file. The rotated file
// replaces the daily rolling log files of earlier deployments.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var console io.Writer = os.Stdout
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	writers := []io.Writer{console}
	if cfg.Dir != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename: filepath.Join(cfg.Dir, "market-data.log"),
			MaxSize:  cfg.MaxSizeMB,
			MaxAge:   cfg.MaxAge,
			Compress: true,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()
}
