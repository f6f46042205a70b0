package config

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/isdmx/neusconf/conf"
)

// requiredKeys must appear in the file itself; everything else falls back to
// the defaults below.
var requiredKeys = []string{
	"general.base_exp_dir",
	"dataset.imSize",
}

// Load parses, merges and validates the experiment configuration at path.
func Load(path string) (*Config, error) {
	record, err := conf.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return FromRecord(record)
}

// FromRecord builds a validated Config from an already-parsed record.
func FromRecord(record map[string]any) (*Config, error) {
	for _, key := range requiredKeys {
		if !recordHas(record, key) {
			return nil, &MissingKeyError{Key: key}
		}
	}

	v := viper.New()
	setDefaults(v)

	if err := v.MergeConfigMap(record); err != nil {
		return nil, fmt.Errorf("merging config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(integralHook())); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.object_viewidx", 0)
	v.SetDefault("dataset.stage", "coarse")
	v.SetDefault("dataset.mtype", "mlp")

	v.SetDefault("validate.validate_resolution_level", 4)
	v.SetDefault("validate.save_freq", 10000)
	v.SetDefault("validate.val_freq", 2500)
	v.SetDefault("validate.val_mesh_freq", 5000)
	v.SetDefault("validate.report_freq", 100)

	// Background NeRF defaults
	v.SetDefault("model.nerf.D", 8)
	v.SetDefault("model.nerf.d_in", 4)
	v.SetDefault("model.nerf.d_in_view", 3)
	v.SetDefault("model.nerf.W", 256)
	v.SetDefault("model.nerf.multires", 10)
	v.SetDefault("model.nerf.multires_view", 4)
	v.SetDefault("model.nerf.output_ch", 4)
	v.SetDefault("model.nerf.skips", []int{4})
	v.SetDefault("model.nerf.use_viewdirs", true)

	// SDF network defaults
	v.SetDefault("model.sdf_network.d_out", 257)
	v.SetDefault("model.sdf_network.d_in", 3)
	v.SetDefault("model.sdf_network.d_hidden", 256)
	v.SetDefault("model.sdf_network.n_layers", 8)
	v.SetDefault("model.sdf_network.skip_in", []int{4})
	v.SetDefault("model.sdf_network.multires", 6)
	v.SetDefault("model.sdf_network.bias", 0.5)
	v.SetDefault("model.sdf_network.scale", 1.0)
	v.SetDefault("model.sdf_network.geometric_init", true)
	v.SetDefault("model.sdf_network.weight_norm", true)

	v.SetDefault("model.variance_network.init_val", 0.3)

	// Color network defaults
	v.SetDefault("model.rendering_network.d_feature", 256)
	v.SetDefault("model.rendering_network.mode", "idr")
	v.SetDefault("model.rendering_network.d_in", 9)
	v.SetDefault("model.rendering_network.d_out", 3)
	v.SetDefault("model.rendering_network.d_hidden", 256)
	v.SetDefault("model.rendering_network.n_layers", 4)
	v.SetDefault("model.rendering_network.weight_norm", true)
	v.SetDefault("model.rendering_network.multires_view", 4)
	v.SetDefault("model.rendering_network.squeeze_out", true)

	// Renderer sampling defaults
	v.SetDefault("model.neus_renderer.n_samples", 64)
	v.SetDefault("model.neus_renderer.n_importance", 64)
	v.SetDefault("model.neus_renderer.n_outside", 0)
	v.SetDefault("model.neus_renderer.up_sample_steps", 4)
	v.SetDefault("model.neus_renderer.perturb", 1.0)
	v.SetDefault("model.neus_renderer.sdf_decay_param", 100.0)

	v.SetDefault("logging.mode", "production")
	v.SetDefault("logging.level", "info")
}

// integralHook rejects fractional values destined for integer fields, so
// a count like n_samples = 64.7 fails loading instead of silently
// truncating to 64.
func integralHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if to != reflect.Int || from != reflect.Float64 {
			return data, nil
		}
		f := data.(float64)
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("value %v is not an integer", f)
		}
		return data, nil
	}
}

// recordHas walks a dotted key through the nested record.
func recordHas(record map[string]any, dotted string) bool {
	cur := record
	parts := strings.Split(dotted, ".")
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return false
		}
		if i == len(parts)-1 {
			return true
		}
		cur, ok = v.(map[string]any)
		if !ok {
			return false
		}
	}
	return false
}
