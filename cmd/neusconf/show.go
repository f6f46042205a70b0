package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/isdmx/neusconf/config"
	"github.com/isdmx/neusconf/logger"
	"github.com/isdmx/neusconf/workspace"
)

func newShowCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show <config-file>",
		Short: "Print the resolved configuration record",
		Long: `Print the configuration after defaults are merged and validation
has passed, together with the derived network input dimensions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return describeLoadError(args[0], err)
			}

			if asYAML {
				out, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("marshaling config: %w", err)
				}
				cmd.OutOrStdout().Write(out)
				return nil
			}

			log, err := logger.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			logResolvedConfig(log, cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "emit the record as YAML instead of a structured summary")
	return cmd
}

// logResolvedConfig dumps the record and its derived dimensions as
// structured fields.
func logResolvedConfig(log *zap.Logger, cfg *config.Config) {
	valWidth, valHeight := workspace.ValidationSize(cfg.Dataset.ImSize, cfg.Validate.ValidateResolutionLevel)

	log.Info("configuration loaded",
		zap.String("general.base_exp_dir", cfg.General.BaseExpDir),
		zap.Int("dataset.object_viewidx", cfg.Dataset.ObjectViewIdx),
		zap.Ints("dataset.imSize", cfg.Dataset.ImSize),
		zap.String("dataset.stage", cfg.Dataset.Stage),
		zap.String("dataset.mtype", cfg.Dataset.MType),
		zap.Int("validate.validate_resolution_level", cfg.Validate.ValidateResolutionLevel),
		zap.Int("validate.save_freq", cfg.Validate.SaveFreq),
		zap.Int("validate.val_freq", cfg.Validate.ValFreq),
		zap.Int("validate.val_mesh_freq", cfg.Validate.ValMeshFreq),
		zap.Int("validate.report_freq", cfg.Validate.ReportFreq),
		zap.Float64("model.variance_network.init_val", cfg.Model.VarianceNetwork.InitVal),
		zap.String("model.rendering_network.mode", cfg.Model.RenderingNetwork.Mode),
		zap.Float64("model.neus_renderer.perturb", cfg.Model.NeusRenderer.Perturb),
		zap.Float64("model.neus_renderer.sdf_decay_param", cfg.Model.NeusRenderer.SDFDecayParam),
	)

	log.Info("derived dimensions",
		zap.Int("nerf.encoded_input_dim", cfg.Model.Nerf.EncodedInputDim()),
		zap.Int("nerf.encoded_view_dim", cfg.Model.Nerf.EncodedViewDim()),
		zap.Int("sdf_network.encoded_input_dim", cfg.Model.SDFNetwork.EncodedInputDim()),
		zap.Int("rendering_network.encoded_input_dim", cfg.Model.RenderingNetwork.EncodedInputDim()),
		zap.Int("neus_renderer.total_samples", cfg.Model.NeusRenderer.TotalSamples()),
		zap.Int("validation.width", valWidth),
		zap.Int("validation.height", valHeight),
	)
}
