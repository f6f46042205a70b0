package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/isdmx/neusconf/conf"
	"github.com/isdmx/neusconf/config"
)

const (
	checkpointDir = "checkpoints"
	validationDir = "validations"
	meshDir       = "meshes"

	snapshotName = "config.conf"
)

// Workspace is an experiment output directory rooted at base_exp_dir.
type Workspace struct {
	root   string
	logger *zap.Logger
}

// New creates the experiment directory tree for the configuration,
// making base_exp_dir and its artifact subdirectories if absent.
func New(cfg *config.Config, logger *zap.Logger) (*Workspace, error) {
	root := cfg.General.BaseExpDir
	for _, dir := range []string{root, filepath.Join(root, checkpointDir), filepath.Join(root, validationDir), filepath.Join(root, meshDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating experiment directory %s: %w", dir, err)
		}
	}

	logger.Info("experiment directory ready", zap.String("base_exp_dir", root))

	return &Workspace{root: root, logger: logger}, nil
}

// Root returns the base experiment directory.
func (w *Workspace) Root() string {
	return w.root
}

// CheckpointPath returns the file path for the checkpoint saved at iter.
func (w *Workspace) CheckpointPath(iter int) string {
	return filepath.Join(w.root, checkpointDir, fmt.Sprintf("ckpt_%07d.conf", iter))
}

// ValidationImagePath returns the file path for the validation render
// produced at iter with the given resolution level.
func (w *Workspace) ValidationImagePath(iter, level int) string {
	return filepath.Join(w.root, validationDir, fmt.Sprintf("%08d_%d.png", iter, level))
}

// MeshPath returns the file path for the mesh extracted at iter.
func (w *Workspace) MeshPath(iter int) string {
	return filepath.Join(w.root, meshDir, fmt.Sprintf("%08d.ply", iter))
}

// SnapshotConfig writes the resolved configuration in canonical form into
// the experiment directory, so a run records the exact record it started
// from.
func (w *Workspace) SnapshotConfig(cfg *config.Config) error {
	return w.writeRecord(filepath.Join(w.root, snapshotName), cfg)
}

// WriteCheckpoint records the run state owned by this tool at iter: the
// resolved configuration, written to the checkpoint path.
func (w *Workspace) WriteCheckpoint(cfg *config.Config, iter int) error {
	return w.writeRecord(w.CheckpointPath(iter), cfg)
}

func (w *Workspace) writeRecord(path string, cfg *config.Config) error {
	text, err := conf.Format(cfg.Canonical())
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.logger.Debug("wrote config record", zap.String("path", path))
	return nil
}

// ValidationSize returns imSize downscaled by the resolution level.
func ValidationSize(imSize []int, level int) (width, height int) {
	if level < 1 {
		level = 1
	}
	return imSize[0] / level, imSize[1] / level
}
