// Package cadence turns the validate.*_freq configuration values into
// iteration-count triggers.
//
// A Schedule answers which periodic actions (checkpoint save, validation
// render, mesh extraction, progress report) are due at a given iteration;
// a Runner walks an iteration range and fires registered hooks at their
// cadences. The runner drives the triggers only, it carries no training
// semantics of its own.
package cadence
