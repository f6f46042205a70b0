// Package workspace manages the experiment output directory.
//
// The workspace package owns everything under general.base_exp_dir: it
// creates the directory tree on startup, snapshots the resolved
// configuration next to the outputs, and constructs the file paths for
// periodic checkpoint, validation-image and mesh artifacts.
package workspace
