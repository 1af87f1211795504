package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the apprater logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ZapLogger adapts a zap sugared logger to the apprater logging contract.
// Messages are printf-style, matching the rest of the tool.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// New builds a production zap logger. Debug output is enabled when verbose is set.
func New(verbose bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return FromZap(l), nil
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: l.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *ZapLogger {
	return FromZap(zap.NewNop())
}

func (l *ZapLogger) Info(msg string, args ...any) {
	l.logger.Infof(msg, args...)
}

func (l *ZapLogger) Warn(msg string, args ...any) {
	l.logger.Warnf(msg, args...)
}

func (l *ZapLogger) Error(msg string, args ...any) {
	l.logger.Errorf(msg, args...)
}

func (l *ZapLogger) Debug(msg string, args ...any) {
	l.logger.Debugf(msg, args...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// Default provides a global default logger instance. It discards output until
// the CLI replaces it with a configured logger.
var Default Logger = Nop()
