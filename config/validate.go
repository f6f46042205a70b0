package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

var (
	stages = map[string]bool{"coarse": true, "fine": true}
	mtypes = map[string]bool{"mlp": true, "siren": true}
	modes  = map[string]bool{"idr": true, "no_view_dir": true, "no_normal": true}
)

// validate ensures every field of the record is inside its valid domain.
// The first violation found is returned; loading is all-or-nothing.
func (c *Config) validate() error {
	if c.General.BaseExpDir == "" {
		return &MissingKeyError{Key: "general.base_exp_dir"}
	}

	if err := c.Dataset.validate(); err != nil {
		return err
	}
	if err := c.Validate.validate(); err != nil {
		return err
	}
	if err := c.Model.validate(); err != nil {
		return err
	}
	return c.Logging.validate()
}

func (l *LoggingConfig) validate() error {
	if l.Mode != "production" && l.Mode != "development" {
		return &RangeError{Key: "logging.mode", Value: l.Mode, Reason: "must be 'production' or 'development'"}
	}
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return &RangeError{Key: "logging.level", Value: l.Level, Reason: "must be a zap level name such as 'debug', 'info' or 'error'"}
	}
	return nil
}

func (d *DatasetConfig) validate() error {
	if d.ObjectViewIdx < 0 {
		return &RangeError{Key: "dataset.object_viewidx", Value: d.ObjectViewIdx, Reason: "must be non-negative"}
	}
	if len(d.ImSize) != 2 {
		return &RangeError{Key: "dataset.imSize", Value: d.ImSize, Reason: "must have exactly two components"}
	}
	for _, n := range d.ImSize {
		if n <= 0 {
			return &RangeError{Key: "dataset.imSize", Value: d.ImSize, Reason: "components must be positive"}
		}
	}
	if !stages[d.Stage] {
		return &RangeError{Key: "dataset.stage", Value: d.Stage, Reason: "must be 'coarse' or 'fine'"}
	}
	if !mtypes[d.MType] {
		return &RangeError{Key: "dataset.mtype", Value: d.MType, Reason: "must be 'mlp' or 'siren'"}
	}
	return nil
}

func (v *ValidateConfig) validate() error {
	counts := []struct {
		key string
		val int
	}{
		{"validate.validate_resolution_level", v.ValidateResolutionLevel},
		{"validate.save_freq", v.SaveFreq},
		{"validate.val_freq", v.ValFreq},
		{"validate.val_mesh_freq", v.ValMeshFreq},
		{"validate.report_freq", v.ReportFreq},
	}
	for _, c := range counts {
		if c.val <= 0 {
			return &RangeError{Key: c.key, Value: c.val, Reason: "must be positive"}
		}
	}
	return nil
}

func (m *ModelConfig) validate() error {
	if err := m.Nerf.validate(); err != nil {
		return err
	}
	if err := m.SDFNetwork.validate(); err != nil {
		return err
	}
	if m.VarianceNetwork.InitVal <= 0 {
		return &RangeError{Key: "model.variance_network.init_val", Value: m.VarianceNetwork.InitVal, Reason: "must be positive"}
	}
	if err := m.RenderingNetwork.validate(); err != nil {
		return err
	}
	return m.NeusRenderer.validate()
}

func (p *NerfParams) validate() error {
	counts := []struct {
		key string
		val int
	}{
		{"model.nerf.D", p.D},
		{"model.nerf.d_in", p.DIn},
		{"model.nerf.W", p.W},
		{"model.nerf.output_ch", p.OutputCh},
	}
	for _, c := range counts {
		if c.val <= 0 {
			return &RangeError{Key: c.key, Value: c.val, Reason: "must be positive"}
		}
	}
	if p.DInView < 0 {
		return &RangeError{Key: "model.nerf.d_in_view", Value: p.DInView, Reason: "must be non-negative"}
	}
	if p.Multires < 0 {
		return &RangeError{Key: "model.nerf.multires", Value: p.Multires, Reason: "must be non-negative"}
	}
	if p.MultiresView < 0 {
		return &RangeError{Key: "model.nerf.multires_view", Value: p.MultiresView, Reason: "must be non-negative"}
	}
	return validSkips("model.nerf.skips", p.Skips, p.D)
}

func (p *SDFNetworkParams) validate() error {
	counts := []struct {
		key string
		val int
	}{
		{"model.sdf_network.d_out", p.DOut},
		{"model.sdf_network.d_in", p.DIn},
		{"model.sdf_network.d_hidden", p.DHidden},
		{"model.sdf_network.n_layers", p.NLayers},
	}
	for _, c := range counts {
		if c.val <= 0 {
			return &RangeError{Key: c.key, Value: c.val, Reason: "must be positive"}
		}
	}
	if p.Multires < 0 {
		return &RangeError{Key: "model.sdf_network.multires", Value: p.Multires, Reason: "must be non-negative"}
	}
	if p.Scale <= 0 {
		return &RangeError{Key: "model.sdf_network.scale", Value: p.Scale, Reason: "must be positive"}
	}
	return validSkips("model.sdf_network.skip_in", p.SkipIn, p.NLayers)
}

func (p *RenderingNetworkParams) validate() error {
	if !modes[p.Mode] {
		return &RangeError{Key: "model.rendering_network.mode", Value: p.Mode, Reason: "must be 'idr', 'no_view_dir' or 'no_normal'"}
	}
	counts := []struct {
		key string
		val int
	}{
		{"model.rendering_network.d_in", p.DIn},
		{"model.rendering_network.d_out", p.DOut},
		{"model.rendering_network.d_hidden", p.DHidden},
		{"model.rendering_network.n_layers", p.NLayers},
	}
	for _, c := range counts {
		if c.val <= 0 {
			return &RangeError{Key: c.key, Value: c.val, Reason: "must be positive"}
		}
	}
	if p.DFeature < 0 {
		return &RangeError{Key: "model.rendering_network.d_feature", Value: p.DFeature, Reason: "must be non-negative"}
	}
	if p.MultiresView < 0 {
		return &RangeError{Key: "model.rendering_network.multires_view", Value: p.MultiresView, Reason: "must be non-negative"}
	}
	return nil
}

func (p *NeusRendererParams) validate() error {
	if p.NSamples <= 0 {
		return &RangeError{Key: "model.neus_renderer.n_samples", Value: p.NSamples, Reason: "must be positive"}
	}
	if p.NImportance < 0 {
		return &RangeError{Key: "model.neus_renderer.n_importance", Value: p.NImportance, Reason: "must be non-negative"}
	}
	if p.NOutside < 0 {
		return &RangeError{Key: "model.neus_renderer.n_outside", Value: p.NOutside, Reason: "must be non-negative"}
	}
	if p.NImportance > 0 {
		if p.UpSampleSteps <= 0 {
			return &RangeError{Key: "model.neus_renderer.up_sample_steps", Value: p.UpSampleSteps, Reason: "must be positive when n_importance > 0"}
		}
		if p.NImportance%p.UpSampleSteps != 0 {
			return &RangeError{Key: "model.neus_renderer.n_importance", Value: p.NImportance, Reason: fmt.Sprintf("must be divisible by up_sample_steps (%d)", p.UpSampleSteps)}
		}
	}
	if p.Perturb < 0 || p.Perturb > 1 {
		return &RangeError{Key: "model.neus_renderer.perturb", Value: p.Perturb, Reason: "must be in [0, 1]"}
	}
	if p.SDFDecayParam <= 0 {
		return &RangeError{Key: "model.neus_renderer.sdf_decay_param", Value: p.SDFDecayParam, Reason: "must be positive"}
	}
	return nil
}

// validSkips checks that every skip-connection index references a valid layer.
func validSkips(key string, skips []int, layers int) error {
	for _, idx := range skips {
		if idx < 0 || idx >= layers {
			return &RangeError{Key: key, Value: idx, Reason: fmt.Sprintf("skip index must be in [0, %d)", layers)}
		}
	}
	return nil
}
