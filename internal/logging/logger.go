package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects encoding, verbosity and an optional rotating log file.
type Config struct {
	Format string // "console" or "json"
	Level  string // zap level name, e.g. "info"
	File   string // empty disables file output

	// Output defaults to os.Stdout.
	Output io.Writer
}

// Logger is a zap logger that owns its rotating file, if any.
type Logger struct {
	*zap.Logger

	file *lumberjack.Logger
}

// New builds a logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encoder, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(out)}

	var file *lumberjack.Logger

	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		}
		sinks = append(sinks, zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)

	return &Logger{
		Logger: zap.New(core, zap.AddCaller()),
		file:   file,
	}, nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder

		return zapcore.NewJSONEncoder(cfg), nil
	case "console", "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

		return zapcore.NewConsoleEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Shutdown flushes buffered entries and closes the log file.
func (l *Logger) Shutdown() error {
	_ = l.Sync()

	if l.file != nil {
		return l.file.Close()
	}

	return nil
}
