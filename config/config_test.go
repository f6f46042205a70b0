package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a record that passes validation; tests mutate single
// fields from here.
func validConfig() *Config {
	return &Config{
		General: GeneralConfig{
			BaseExpDir: "./exp/scan24/womask",
		},
		Dataset: DatasetConfig{
			ObjectViewIdx: 3,
			ImSize:        []int{256, 256},
			Stage:         "coarse",
			MType:         "mlp",
		},
		Validate: ValidateConfig{
			ValidateResolutionLevel: 4,
			SaveFreq:                10000,
			ValFreq:                 2500,
			ValMeshFreq:             5000,
			ReportFreq:              100,
		},
		Model: ModelConfig{
			Nerf: NerfParams{
				D:            8,
				DIn:          4,
				DInView:      3,
				W:            256,
				Multires:     10,
				MultiresView: 4,
				OutputCh:     4,
				Skips:        []int{4},
				UseViewdirs:  true,
			},
			SDFNetwork: SDFNetworkParams{
				DOut:          257,
				DIn:           3,
				DHidden:       256,
				NLayers:       8,
				SkipIn:        []int{4},
				Multires:      6,
				Bias:          0.5,
				Scale:         1.0,
				GeometricInit: true,
				WeightNorm:    true,
			},
			VarianceNetwork: VarianceNetworkParams{
				InitVal: 0.3,
			},
			RenderingNetwork: RenderingNetworkParams{
				DFeature:     256,
				Mode:         "idr",
				DIn:          9,
				DOut:         3,
				DHidden:      256,
				NLayers:      4,
				WeightNorm:   true,
				MultiresView: 4,
				SqueezeOut:   true,
			},
			NeusRenderer: NeusRendererParams{
				NSamples:      64,
				NImportance:   64,
				NOutside:      0,
				UpSampleSteps: 4,
				Perturb:       1.0,
				SDFDecayParam: 100.0,
			},
		},
		Logging: LoggingConfig{
			Mode:  "production",
			Level: "info",
		},
	}
}

func TestLoad(t *testing.T) {
	t.Run("FullFixture", func(t *testing.T) {
		cfg, err := Load(filepath.Join("testdata", "womask.conf"))
		require.NoError(t, err)

		assert.Equal(t, "./exp/CASE_NAME/womask", cfg.General.BaseExpDir)
		assert.Equal(t, 3, cfg.Dataset.ObjectViewIdx)
		assert.Equal(t, []int{256, 256}, cfg.Dataset.ImSize)
		assert.Equal(t, "coarse", cfg.Dataset.Stage)
		assert.Equal(t, "mlp", cfg.Dataset.MType)

		assert.Equal(t, 10000, cfg.Validate.SaveFreq)
		assert.Equal(t, 2500, cfg.Validate.ValFreq)

		assert.Equal(t, 8, cfg.Model.Nerf.D)
		assert.Equal(t, []int{4}, cfg.Model.Nerf.Skips)
		assert.True(t, cfg.Model.Nerf.UseViewdirs)

		assert.Equal(t, 257, cfg.Model.SDFNetwork.DOut)
		assert.Equal(t, 0.5, cfg.Model.SDFNetwork.Bias)
		assert.True(t, cfg.Model.SDFNetwork.GeometricInit)

		assert.Equal(t, 0.3, cfg.Model.VarianceNetwork.InitVal)
		assert.Equal(t, "idr", cfg.Model.RenderingNetwork.Mode)

		assert.Equal(t, 64, cfg.Model.NeusRenderer.NSamples)
		assert.Equal(t, 1.0, cfg.Model.NeusRenderer.Perturb)
	})

	t.Run("DefaultsFillUnsetKeys", func(t *testing.T) {
		path := writeConf(t, `
general {
    base_exp_dir = ./exp/minimal
}
dataset {
    imSize = [800, 600]
}
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		// Unset keys come back as documented defaults.
		assert.Equal(t, "coarse", cfg.Dataset.Stage)
		assert.Equal(t, "mlp", cfg.Dataset.MType)
		assert.Equal(t, 10000, cfg.Validate.SaveFreq)
		assert.Equal(t, 8, cfg.Model.Nerf.D)
		assert.Equal(t, []int{4}, cfg.Model.SDFNetwork.SkipIn)
		assert.Equal(t, 0.3, cfg.Model.VarianceNetwork.InitVal)
		assert.Equal(t, 100.0, cfg.Model.NeusRenderer.SDFDecayParam)
		assert.Equal(t, "production", cfg.Logging.Mode)
		assert.Equal(t, "info", cfg.Logging.Level)

		// Explicit keys win over defaults.
		assert.Equal(t, []int{800, 600}, cfg.Dataset.ImSize)
	})

	t.Run("MissingBaseExpDir", func(t *testing.T) {
		path := writeConf(t, `
dataset {
    imSize = [256, 256]
}
`)
		_, err := Load(path)
		require.Error(t, err)

		var missing *MissingKeyError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "general.base_exp_dir", missing.Key)
	})

	t.Run("MissingImSize", func(t *testing.T) {
		path := writeConf(t, `
general {
    base_exp_dir = ./exp/minimal
}
`)
		_, err := Load(path)
		require.Error(t, err)

		var missing *MissingKeyError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "dataset.imSize", missing.Key)
	})

	t.Run("FractionalCountRejected", func(t *testing.T) {
		path := writeConf(t, `
general {
    base_exp_dir = ./exp/minimal
}
dataset {
    imSize = [256, 256]
}
model {
    neus_renderer {
        n_samples = 64.7
    }
}
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an integer")
	})

	t.Run("FractionalImSizeRejected", func(t *testing.T) {
		path := writeConf(t, `
general {
    base_exp_dir = ./exp/minimal
}
dataset {
    imSize = [256.5, 256]
}
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an integer")
	})

	t.Run("IntegralFloatStillLoads", func(t *testing.T) {
		path := writeConf(t, `
general {
    base_exp_dir = ./exp/minimal
}
dataset {
    imSize = [256, 256]
}
model {
    neus_renderer {
        n_samples = 64.0
    }
}
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Model.NeusRenderer.NSamples)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeConf(t, "general {\n  base_exp_dir = \n}\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "syntax error")
	})

	t.Run("FileNotFound", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.conf"))
		require.Error(t, err)
	})
}

func TestValidation(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.validate())
	})

	t.Run("ImSizeWrongArity", func(t *testing.T) {
		cfg := validConfig()
		cfg.Dataset.ImSize = []int{256}

		err := cfg.validate()
		requireRangeError(t, err, "dataset.imSize")
	})

	t.Run("ImSizeNonPositive", func(t *testing.T) {
		cfg := validConfig()
		cfg.Dataset.ImSize = []int{256, 0}

		err := cfg.validate()
		requireRangeError(t, err, "dataset.imSize")
	})

	t.Run("UnknownStage", func(t *testing.T) {
		cfg := validConfig()
		cfg.Dataset.Stage = "medium"

		err := cfg.validate()
		requireRangeError(t, err, "dataset.stage")
	})

	t.Run("NegativeFrequency", func(t *testing.T) {
		cfg := validConfig()
		cfg.Validate.ValMeshFreq = -5000

		err := cfg.validate()
		requireRangeError(t, err, "validate.val_mesh_freq")
	})

	t.Run("SkipInsideDepthPasses", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.Nerf.Skips = []int{4}
		cfg.Model.Nerf.D = 8
		require.NoError(t, cfg.validate())
	})

	t.Run("SkipBeyondDepthFails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.Nerf.Skips = []int{9}
		cfg.Model.Nerf.D = 8

		err := cfg.validate()
		requireRangeError(t, err, "model.nerf.skips")
	})

	t.Run("NegativeSkipIndex", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.SDFNetwork.SkipIn = []int{-1}

		err := cfg.validate()
		requireRangeError(t, err, "model.sdf_network.skip_in")
	})

	t.Run("NegativeSampleCount", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.NeusRenderer.NSamples = -64

		err := cfg.validate()
		requireRangeError(t, err, "model.neus_renderer.n_samples")
	})

	t.Run("PerturbAtBoundsPasses", func(t *testing.T) {
		for _, v := range []float64{0.0, 0.5, 1.0} {
			cfg := validConfig()
			cfg.Model.NeusRenderer.Perturb = v
			require.NoError(t, cfg.validate(), "perturb = %v", v)
		}
	})

	t.Run("PerturbOutOfBoundsFails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.NeusRenderer.Perturb = 1.5

		err := cfg.validate()
		requireRangeError(t, err, "model.neus_renderer.perturb")
	})

	t.Run("ImportanceNotDivisibleBySteps", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.NeusRenderer.NImportance = 63
		cfg.Model.NeusRenderer.UpSampleSteps = 4

		err := cfg.validate()
		requireRangeError(t, err, "model.neus_renderer.n_importance")
	})

	t.Run("ZeroImportanceSkipsStepCheck", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.NeusRenderer.NImportance = 0
		cfg.Model.NeusRenderer.UpSampleSteps = 0
		require.NoError(t, cfg.validate())
	})

	t.Run("NonPositiveVarianceInit", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.VarianceNetwork.InitVal = 0

		err := cfg.validate()
		requireRangeError(t, err, "model.variance_network.init_val")
	})

	t.Run("UnknownLoggingMode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Mode = "interactive"

		err := cfg.validate()
		requireRangeError(t, err, "logging.mode")
	})

	t.Run("UnknownLoggingLevel", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Level = "chatty"

		err := cfg.validate()
		requireRangeError(t, err, "logging.level")
	})

	t.Run("UnknownRenderingMode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.RenderingNetwork.Mode = "phong"

		err := cfg.validate()
		requireRangeError(t, err, "model.rendering_network.mode")
	})
}

func TestCanonicalRoundTrip(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "womask.conf"))
	require.NoError(t, err)

	reloaded, err := FromRecord(cfg.Canonical())
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestEmbeddingDims(t *testing.T) {
	t.Run("ZeroBandsPassThrough", func(t *testing.T) {
		assert.Equal(t, 3, EmbeddingDim(3, 0))
	})

	t.Run("FrequencyBands", func(t *testing.T) {
		// 3 coords * (identity + 6 sin/cos band pairs)
		assert.Equal(t, 39, EmbeddingDim(3, 6))
		assert.Equal(t, 84, EmbeddingDim(4, 10))
	})

	t.Run("NetworkInputDims", func(t *testing.T) {
		cfg := validConfig()
		assert.Equal(t, 84, cfg.Model.Nerf.EncodedInputDim())
		assert.Equal(t, 27, cfg.Model.Nerf.EncodedViewDim())
		assert.Equal(t, 39, cfg.Model.SDFNetwork.EncodedInputDim())
		// d_in 9 with the view slice expanded to 27, plus 256 features
		assert.Equal(t, 289, cfg.Model.RenderingNetwork.EncodedInputDim())
		assert.Equal(t, 128, cfg.Model.NeusRenderer.TotalSamples())
	})

	t.Run("ViewdirsDisabled", func(t *testing.T) {
		p := NerfParams{DInView: 3, MultiresView: 4, UseViewdirs: false}
		assert.Equal(t, 0, p.EncodedViewDim())
	})
}

// requireRangeError asserts err is a *RangeError for the given key.
func requireRangeError(t *testing.T, err error, key string) {
	t.Helper()
	require.Error(t, err)

	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr), "expected *RangeError, got %T", err)
	assert.Equal(t, key, rangeErr.Key)
}

func writeConf(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}
