package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(env string) (*zap.Logger, error) {
	return build(env, nil)
}

// NewFileLogger writes to path instead of stderr. The terminal client uses it so
// diagnostics never draw over the UI.
func NewFileLogger(env, path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return build(env, []string{path})
}

func build(env string, outputs []string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if outputs != nil {
		cfg.OutputPaths = outputs
		cfg.ErrorOutputPaths = outputs
	}
	return cfg.Build()
}
