// Package logging builds the zap logger used by the command line tool.
//
// Human-readable output goes to the console; when a log file is configured,
// JSON records are also written to it through a rotating lumberjack writer.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the logging settings.
type Config struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string
	// Verbose forces the debug level.
	Verbose bool
	// File is the path of the JSON log file. Empty disables file output.
	File string
	// MaxSize is the size in megabytes at which the file is rotated.
	MaxSize int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
	// MaxAge is the number of days rotated files are kept.
	MaxAge int
	// Compress gzips rotated files.
	Compress bool
}

// ParseLevel parses a level name, falling back to info for empty input.
func ParseLevel(name string) (zapcore.Level, error) {
	lvl := zapcore.InfoLevel
	if strings.TrimSpace(name) == "" {
		return lvl, nil
	}

	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	return lvl, nil
}

// New creates a logger writing to console and, if configured, to cfg.File.
// The returned close function flushes and closes the file.
func New(cfg Config, console io.Writer) (*zap.Logger, func() error, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Verbose {
		lvl = zapcore.DebugLevel
	}

	atomicLevel := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.TimeKey = ""
	consoleCfg.CallerKey = ""
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(console)), atomicLevel)
	closeFn := func() error { return nil }

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}

		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder

		core = zapcore.NewTee(
			core,
			zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), atomicLevel),
		)
		closeFn = fileWriter.Close
	}

	logger := zap.New(core, zap.AddCaller()).Named("rowmap")

	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}
