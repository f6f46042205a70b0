package config

// Config represents a full experiment configuration record. It is populated
// once at load time and never mutated afterwards.
type Config struct {
	General  GeneralConfig  `mapstructure:"general" yaml:"general"`
	Dataset  DatasetConfig  `mapstructure:"dataset" yaml:"dataset"`
	Validate ValidateConfig `mapstructure:"validate" yaml:"validate"`
	Model    ModelConfig    `mapstructure:"model" yaml:"model"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// GeneralConfig holds run-wide settings.
type GeneralConfig struct {
	// BaseExpDir is the experiment output directory, created if absent.
	BaseExpDir string `mapstructure:"base_exp_dir" yaml:"base_exp_dir"`
}

// DatasetConfig describes the input views.
type DatasetConfig struct {
	ObjectViewIdx int    `mapstructure:"object_viewidx" yaml:"object_viewidx"`
	ImSize        []int  `mapstructure:"imSize" yaml:"imSize"`
	Stage         string `mapstructure:"stage" yaml:"stage"`
	MType         string `mapstructure:"mtype" yaml:"mtype"`
}

// ValidateConfig holds the iteration-count cadences for periodic actions.
type ValidateConfig struct {
	ValidateResolutionLevel int `mapstructure:"validate_resolution_level" yaml:"validate_resolution_level"`
	SaveFreq                int `mapstructure:"save_freq" yaml:"save_freq"`
	ValFreq                 int `mapstructure:"val_freq" yaml:"val_freq"`
	ValMeshFreq             int `mapstructure:"val_mesh_freq" yaml:"val_mesh_freq"`
	ReportFreq              int `mapstructure:"report_freq" yaml:"report_freq"`
}

// ModelConfig groups the per-network hyperparameter records.
type ModelConfig struct {
	Nerf             NerfParams             `mapstructure:"nerf" yaml:"nerf"`
	SDFNetwork       SDFNetworkParams       `mapstructure:"sdf_network" yaml:"sdf_network"`
	VarianceNetwork  VarianceNetworkParams  `mapstructure:"variance_network" yaml:"variance_network"`
	RenderingNetwork RenderingNetworkParams `mapstructure:"rendering_network" yaml:"rendering_network"`
	NeusRenderer     NeusRendererParams     `mapstructure:"neus_renderer" yaml:"neus_renderer"`
}

// NerfParams are the constructor arguments for the background NeRF network.
type NerfParams struct {
	D            int    `mapstructure:"D" yaml:"D"`
	DIn          int    `mapstructure:"d_in" yaml:"d_in"`
	DInView      int    `mapstructure:"d_in_view" yaml:"d_in_view"`
	W            int    `mapstructure:"W" yaml:"W"`
	Multires     int    `mapstructure:"multires" yaml:"multires"`
	MultiresView int    `mapstructure:"multires_view" yaml:"multires_view"`
	OutputCh     int    `mapstructure:"output_ch" yaml:"output_ch"`
	Skips        []int  `mapstructure:"skips" yaml:"skips"`
	UseViewdirs  bool   `mapstructure:"use_viewdirs" yaml:"use_viewdirs"`
}

// SDFNetworkParams are the constructor arguments for the SDF network.
type SDFNetworkParams struct {
	DOut          int     `mapstructure:"d_out" yaml:"d_out"`
	DIn           int     `mapstructure:"d_in" yaml:"d_in"`
	DHidden       int     `mapstructure:"d_hidden" yaml:"d_hidden"`
	NLayers       int     `mapstructure:"n_layers" yaml:"n_layers"`
	SkipIn        []int   `mapstructure:"skip_in" yaml:"skip_in"`
	Multires      int     `mapstructure:"multires" yaml:"multires"`
	Bias          float64 `mapstructure:"bias" yaml:"bias"`
	Scale         float64 `mapstructure:"scale" yaml:"scale"`
	GeometricInit bool    `mapstructure:"geometric_init" yaml:"geometric_init"`
	WeightNorm    bool    `mapstructure:"weight_norm" yaml:"weight_norm"`
}

// VarianceNetworkParams hold the learned variance initialization.
type VarianceNetworkParams struct {
	InitVal float64 `mapstructure:"init_val" yaml:"init_val"`
}

// RenderingNetworkParams are the constructor arguments for the color network.
type RenderingNetworkParams struct {
	DFeature     int    `mapstructure:"d_feature" yaml:"d_feature"`
	Mode         string `mapstructure:"mode" yaml:"mode"`
	DIn          int    `mapstructure:"d_in" yaml:"d_in"`
	DOut         int    `mapstructure:"d_out" yaml:"d_out"`
	DHidden      int    `mapstructure:"d_hidden" yaml:"d_hidden"`
	NLayers      int    `mapstructure:"n_layers" yaml:"n_layers"`
	WeightNorm   bool   `mapstructure:"weight_norm" yaml:"weight_norm"`
	MultiresView int    `mapstructure:"multires_view" yaml:"multires_view"`
	SqueezeOut   bool   `mapstructure:"squeeze_out" yaml:"squeeze_out"`
}

// NeusRendererParams control ray sampling for the volume renderer.
type NeusRendererParams struct {
	NSamples      int     `mapstructure:"n_samples" yaml:"n_samples"`
	NImportance   int     `mapstructure:"n_importance" yaml:"n_importance"`
	NOutside      int     `mapstructure:"n_outside" yaml:"n_outside"`
	UpSampleSteps int     `mapstructure:"up_sample_steps" yaml:"up_sample_steps"`
	Perturb       float64 `mapstructure:"perturb" yaml:"perturb"`
	SDFDecayParam float64 `mapstructure:"sdf_decay_param" yaml:"sdf_decay_param"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Mode  string `mapstructure:"mode" yaml:"mode"`
	Level string `mapstructure:"level" yaml:"level"`
}
