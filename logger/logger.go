package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/isdmx/neusconf/config"
)

// New builds the run logger for a logging record. Mode selects the zap
// preset: production emits JSON with ISO8601 timestamps, development a
// colored console encoder. Level accepts any zap level name.
//
// Out-of-domain values surface as the loader's RangeError, so a bad
// logging section fails startup the same way any other bad key does.
func New(lc config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch lc.Mode {
	case "production":
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "development":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, &config.RangeError{Key: "logging.mode", Value: lc.Mode, Reason: "must be 'production' or 'development'"}
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, &config.RangeError{Key: "logging.level", Value: lc.Level, Reason: "must be a zap level name such as 'debug', 'info' or 'error'"}
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// NewFromConfig builds the logger for a full configuration record.
func NewFromConfig(cfg *config.Config) (*zap.Logger, error) {
	return New(cfg.Logging)
}

// ForRun attaches the experiment identity to a logger, so every line of a
// cadence run carries the stage and output directory it belongs to.
func ForRun(log *zap.Logger, cfg *config.Config) *zap.Logger {
	return log.With(
		zap.String("stage", cfg.Dataset.Stage),
		zap.String("base_exp_dir", cfg.General.BaseExpDir),
	)
}
