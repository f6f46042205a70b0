// Package logger builds the zap loggers a run writes through.
//
// Loggers derive from the logging section of the configuration record:
// mode picks the production or development zap preset, level any zap
// level name. Unknown modes and levels are reported with the same typed
// RangeError the config loader uses. ForRun stamps the experiment
// identity (stage, base_exp_dir) onto every line of a cadence run.
//
// Usage:
//
//	log, err := logger.New(cfg.Logging)
//	if err != nil {
//	    return err
//	}
//	logger.ForRun(log, cfg).Info("run starting")
package logger
