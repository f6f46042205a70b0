package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/isdmx/neusconf/cadence"
	"github.com/isdmx/neusconf/config"
	"github.com/isdmx/neusconf/logger"
	"github.com/isdmx/neusconf/workspace"
)

func newRunCommand() *cobra.Command {
	var iters int

	cmd := &cobra.Command{
		Use:   "run <config-file>",
		Short: "Walk the iteration cadences of a configuration",
		Long: `Load a configuration, create its experiment directory, snapshot the
resolved record there, then walk the iteration range firing every periodic
trigger (report, checkpoint save, validation, mesh) at its configured
cadence. Checkpoints record the resolved configuration; validation and
mesh triggers log the artifact paths a consumer would produce.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCadence(args[0], iters)
		},
	}

	cmd.Flags().IntVar(&iters, "iters", 10000, "number of iterations to walk")
	return cmd
}

func runCadence(path string, iters int) error {
	app := fx.New(
		// Provide dependencies
		fx.Provide(
			func() (*config.Config, error) { return config.Load(path) },
			logger.NewFromConfig,
			workspace.New,
			func(cfg *config.Config) cadence.Schedule { return cadence.NewSchedule(cfg.Validate) },
		),

		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, cfg *config.Config, log *zap.Logger, ws *workspace.Workspace, sched cadence.Schedule) {
			runCtx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					if err := ws.SnapshotConfig(cfg); err != nil {
						cancel()
						return err
					}
					runLog := logger.ForRun(log, cfg)
					runner := cadence.NewRunner(sched, runHooks(cfg, runLog, ws), runLog)
					go func() {
						if err := runner.Run(runCtx, iters); err != nil {
							runLog.Error("cadence run failed", zap.Error(err))
							_ = sd.Shutdown(fx.ExitCode(1))
							return
						}
						_ = sd.Shutdown()
					}()
					return nil
				},
				// A signal stops the app, which cancels the walk.
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),

		// Use the application logger for fx logs
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)

	app.Run()
	return nil
}

// runHooks wires the periodic actions to the workspace.
func runHooks(cfg *config.Config, log *zap.Logger, ws *workspace.Workspace) cadence.Hooks {
	valWidth, valHeight := workspace.ValidationSize(cfg.Dataset.ImSize, cfg.Validate.ValidateResolutionLevel)

	return cadence.Hooks{
		OnSave: func(iter int) error {
			if err := ws.WriteCheckpoint(cfg, iter); err != nil {
				return err
			}
			log.Info("checkpoint saved",
				zap.Int("iteration", iter),
				zap.String("path", ws.CheckpointPath(iter)))
			return nil
		},
		OnVal: func(iter int) error {
			log.Info("validation due",
				zap.Int("iteration", iter),
				zap.String("image", ws.ValidationImagePath(iter, cfg.Validate.ValidateResolutionLevel)),
				zap.Int("width", valWidth),
				zap.Int("height", valHeight))
			return nil
		},
		OnValMesh: func(iter int) error {
			log.Info("mesh extraction due",
				zap.Int("iteration", iter),
				zap.String("mesh", ws.MeshPath(iter)))
			return nil
		},
		OnReport: func(iter int) error {
			log.Info("progress", zap.Int("iteration", iter))
			return nil
		},
	}
}
