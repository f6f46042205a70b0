package config

// Canonical returns the record as the generic nested map the conf codec
// serializes, using the file's key spelling. Re-encoding and reloading the
// result yields an identical Config.
func (c *Config) Canonical() map[string]any {
	return map[string]any{
		"general": map[string]any{
			"base_exp_dir": c.General.BaseExpDir,
		},
		"dataset": map[string]any{
			"object_viewidx": c.Dataset.ObjectViewIdx,
			"imSize":         append([]int(nil), c.Dataset.ImSize...),
			"stage":          c.Dataset.Stage,
			"mtype":          c.Dataset.MType,
		},
		"validate": map[string]any{
			"validate_resolution_level": c.Validate.ValidateResolutionLevel,
			"save_freq":                 c.Validate.SaveFreq,
			"val_freq":                  c.Validate.ValFreq,
			"val_mesh_freq":             c.Validate.ValMeshFreq,
			"report_freq":               c.Validate.ReportFreq,
		},
		"model": map[string]any{
			"nerf": map[string]any{
				"D":             c.Model.Nerf.D,
				"d_in":          c.Model.Nerf.DIn,
				"d_in_view":     c.Model.Nerf.DInView,
				"W":             c.Model.Nerf.W,
				"multires":      c.Model.Nerf.Multires,
				"multires_view": c.Model.Nerf.MultiresView,
				"output_ch":     c.Model.Nerf.OutputCh,
				"skips":         append([]int(nil), c.Model.Nerf.Skips...),
				"use_viewdirs":  c.Model.Nerf.UseViewdirs,
			},
			"sdf_network": map[string]any{
				"d_out":          c.Model.SDFNetwork.DOut,
				"d_in":           c.Model.SDFNetwork.DIn,
				"d_hidden":       c.Model.SDFNetwork.DHidden,
				"n_layers":       c.Model.SDFNetwork.NLayers,
				"skip_in":        append([]int(nil), c.Model.SDFNetwork.SkipIn...),
				"multires":       c.Model.SDFNetwork.Multires,
				"bias":           c.Model.SDFNetwork.Bias,
				"scale":          c.Model.SDFNetwork.Scale,
				"geometric_init": c.Model.SDFNetwork.GeometricInit,
				"weight_norm":    c.Model.SDFNetwork.WeightNorm,
			},
			"variance_network": map[string]any{
				"init_val": c.Model.VarianceNetwork.InitVal,
			},
			"rendering_network": map[string]any{
				"d_feature":     c.Model.RenderingNetwork.DFeature,
				"mode":          c.Model.RenderingNetwork.Mode,
				"d_in":          c.Model.RenderingNetwork.DIn,
				"d_out":         c.Model.RenderingNetwork.DOut,
				"d_hidden":      c.Model.RenderingNetwork.DHidden,
				"n_layers":      c.Model.RenderingNetwork.NLayers,
				"weight_norm":   c.Model.RenderingNetwork.WeightNorm,
				"multires_view": c.Model.RenderingNetwork.MultiresView,
				"squeeze_out":   c.Model.RenderingNetwork.SqueezeOut,
			},
			"neus_renderer": map[string]any{
				"n_samples":       c.Model.NeusRenderer.NSamples,
				"n_importance":    c.Model.NeusRenderer.NImportance,
				"n_outside":       c.Model.NeusRenderer.NOutside,
				"up_sample_steps": c.Model.NeusRenderer.UpSampleSteps,
				"perturb":         c.Model.NeusRenderer.Perturb,
				"sdf_decay_param": c.Model.NeusRenderer.SDFDecayParam,
			},
		},
		"logging": map[string]any{
			"mode":  c.Logging.Mode,
			"level": c.Logging.Level,
		},
	}
}
