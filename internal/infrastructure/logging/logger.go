package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every production log line.
const ServiceName = "quizbridge"

// Logger wraps zap.Logger with the widget server's conventions.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string
}

// New creates a logger from cfg. An unknown level is an error.
func New(cfg Config) (*Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.MessageKey = "message"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{"service": ServiceName}
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapCfg.Level = level
	zapCfg.Sampling = nil
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewFromSettings builds a logger for LOG_LEVEL and LOG_DEV. An empty or
// unparseable level falls back to debug in development and info otherwise.
func NewFromSettings(level string, development bool) *Logger {
	fallback := "info"
	if development {
		fallback = "debug"
	}
	if level == "" {
		level = fallback
	}

	logger, err := New(Config{Level: level, Development: development})
	if err == nil {
		return logger
	}
	logger, err = New(Config{Level: fallback, Development: development})
	if err != nil {
		return &Logger{Logger: zap.NewNop()}
	}
	logger.Warn("Unknown log level, using default", zap.String("level", level), zap.String("default", fallback))
	return logger
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *zap.Logger {
	return l.Named(name).With(zap.String("component", name))
}

