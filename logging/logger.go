// Package logging builds the zap loggers used across icegeom.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/icegeom/config"
)

// New builds a logger from the logging section of the configuration.
// Format "json" uses the production encoder, "console" the development one.
func New(cfg config.Logging) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	default:
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForRank scopes a logger to one rank. Ranks other than the root only emit
// warnings and errors so that collective steps are reported once.
func ForRank(base *zap.Logger, rank int) *zap.Logger {
	l := base.With(zap.Int("rank", rank))
	if rank == 0 {
		return l
	}
	return l.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
}
