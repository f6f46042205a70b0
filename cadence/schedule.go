package cadence

import "github.com/isdmx/neusconf/config"

// Schedule holds the iteration cadences for the periodic actions of a run.
type Schedule struct {
	Save    int
	Val     int
	ValMesh int
	Report  int
}

// NewSchedule builds a Schedule from the validate section of a config.
func NewSchedule(vc config.ValidateConfig) Schedule {
	return Schedule{
		Save:    vc.SaveFreq,
		Val:     vc.ValFreq,
		ValMesh: vc.ValMeshFreq,
		Report:  vc.ReportFreq,
	}
}

// Triggers reports which actions fire at one iteration.
type Triggers struct {
	Save    bool
	Val     bool
	ValMesh bool
	Report  bool
}

// Any reports whether at least one action fires.
func (t Triggers) Any() bool {
	return t.Save || t.Val || t.ValMesh || t.Report
}

// Due returns the actions due at iter. Iteration counts are 1-based;
// nothing is due at iteration zero.
func (s Schedule) Due(iter int) Triggers {
	return Triggers{
		Save:    due(iter, s.Save),
		Val:     due(iter, s.Val),
		ValMesh: due(iter, s.ValMesh),
		Report:  due(iter, s.Report),
	}
}

func due(iter, freq int) bool {
	return iter > 0 && freq > 0 && iter%freq == 0
}
