package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/config"
)

// New builds a zap logger from the logging section of the configuration
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output, err := outputPath(cfg)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          encodingFormat(cfg.Format),
		EncoderConfig:     encoderConfig(cfg.Format),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !cfg.IncludeCaller,
		DisableStacktrace: true,
	}

	return zapCfg.Build()
}

// NewDefault creates a text logger on stderr at info level
func NewDefault() *zap.Logger {
	logger, err := New(config.LoggingConfig{Level: "info", Format: "text", Output: "stderr"})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func outputPath(cfg config.LoggingConfig) (string, error) {
	switch cfg.Output {
	case "", "stderr":
		return "stderr", nil
	case "stdout":
		return "stdout", nil
	case "file":
		if cfg.FilePath == "" {
			return "", fmt.Errorf("logging output is file but no file_path is set")
		}
		return cfg.FilePath, nil
	default:
		return "", fmt.Errorf("unsupported logging output: %s", cfg.Output)
	}
}

func encodingFormat(format string) string {
	if format == "json" {
		return "json"
	}
	return "console"
}

func encoderConfig(format string) zapcore.EncoderConfig {
	if format == "json" {
		return zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// ZapLogger adapts a zap logger to the metadata-map logger used by
// application handlers
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger; a nil logger discards everything
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// Log writes message at level with metadata as structured fields
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	for key, value := range metadata {
		fields = append(fields, zap.Any(key, value))
	}

	switch strings.ToUpper(level) {
	case "DEBUG":
		l.logger.Debug(message, fields...)
	case "WARN", "WARNING":
		l.logger.Warn(message, fields...)
	case "ERROR":
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}
