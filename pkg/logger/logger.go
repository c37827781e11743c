package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig controls how the process-wide zap logger is built.
type LoggerConfig struct {
	Debug bool
}

// NewLogger returns a production (JSON) zap logger. When Debug is set the
// level drops to debug and stack traces are attached to warnings.
func NewLogger(cfg *LoggerConfig, options ...zap.Option) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &LoggerConfig{}
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	mergedOptions := []zap.Option{zap.WithCaller(true)}
	if cfg.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		mergedOptions = append(mergedOptions, zap.AddStacktrace(zap.WarnLevel))
	} else {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	mergedOptions = append(mergedOptions, options...)

	return zapConfig.Build(mergedOptions...)
}
