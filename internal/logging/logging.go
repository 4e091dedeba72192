// Package logging builds the zap loggers used across dieselxr. Console output
// goes to stderr and a JSON copy is written to a lumberjack rotated file.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 20
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Options controls logger construction. A zero FilePath disables the file core.
type Options struct {
	FilePath    string
	Level       string
	Development bool
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// New returns a logger teeing console and rotated file output.
func New(opts Options) *zap.Logger {
	level := ParseLevel(opts.Level, zapcore.InfoLevel)
	if opts.Development && opts.Level == "" {
		level = zapcore.DebugLevel
	}
	return zap.New(NewCore(level, zapcore.Lock(os.Stderr), fileWriter(opts), opts.Development), zap.AddCaller())
}

// NewCore tees a console core and, if file is non-nil, a JSON file core.
func NewCore(level zapcore.Level, console, file zapcore.WriteSyncer, development bool) zapcore.Core {
	var consoleEncoder zapcore.Encoder
	if development {
		consoleEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(encoderConfig())
	}
	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, console, level)}
	if file != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), file, level))
	}
	return zapcore.NewTee(cores...)
}

func fileWriter(opts Options) zapcore.WriteSyncer {
	if opts.FilePath == "" {
		return nil
	}
	l := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	if l.MaxSize == 0 {
		l.MaxSize = DefaultMaxSizeMB
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = DefaultMaxBackups
	}
	if l.MaxAge == 0 {
		l.MaxAge = DefaultMaxAgeDays
	}
	return zapcore.AddSync(l)
}

// ParseLevel maps debug/info/warn/error/fatal (any case) to a zap level.
func ParseLevel(s string, def zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return def
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return cfg
}
