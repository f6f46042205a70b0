package cadence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/isdmx/neusconf/config"
)

func TestSchedule(t *testing.T) {
	sched := NewSchedule(config.ValidateConfig{
		SaveFreq:    10000,
		ValFreq:     2500,
		ValMeshFreq: 5000,
		ReportFreq:  100,
	})

	t.Run("NothingDueAtZero", func(t *testing.T) {
		assert.False(t, sched.Due(0).Any())
	})

	t.Run("NothingDueOffCadence", func(t *testing.T) {
		assert.False(t, sched.Due(99).Any())
		assert.False(t, sched.Due(2501).Any())
	})

	t.Run("SingleTrigger", func(t *testing.T) {
		tr := sched.Due(100)
		assert.True(t, tr.Report)
		assert.False(t, tr.Save)
		assert.False(t, tr.Val)
		assert.False(t, tr.ValMesh)
	})

	t.Run("CoincidingTriggers", func(t *testing.T) {
		// 10000 is a multiple of every cadence.
		tr := sched.Due(10000)
		assert.True(t, tr.Save)
		assert.True(t, tr.Val)
		assert.True(t, tr.ValMesh)
		assert.True(t, tr.Report)
	})

	t.Run("MeshWithoutSave", func(t *testing.T) {
		tr := sched.Due(5000)
		assert.False(t, tr.Save)
		assert.True(t, tr.Val)
		assert.True(t, tr.ValMesh)
		assert.True(t, tr.Report)
	})
}

func TestRunner(t *testing.T) {
	sched := Schedule{Save: 10, Val: 5, ValMesh: 10, Report: 2}

	t.Run("FiresHooksAtCadence", func(t *testing.T) {
		var saves, vals, meshes, reports []int
		hooks := Hooks{
			OnSave:    func(i int) error { saves = append(saves, i); return nil },
			OnVal:     func(i int) error { vals = append(vals, i); return nil },
			OnValMesh: func(i int) error { meshes = append(meshes, i); return nil },
			OnReport:  func(i int) error { reports = append(reports, i); return nil },
		}

		r := NewRunner(sched, hooks, zaptest.NewLogger(t))
		require.NoError(t, r.Run(context.Background(), 20))

		assert.Equal(t, []int{10, 20}, saves)
		assert.Equal(t, []int{5, 10, 15, 20}, vals)
		assert.Equal(t, []int{10, 20}, meshes)
		assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}, reports)
	})

	t.Run("NilHooksAreSkipped", func(t *testing.T) {
		r := NewRunner(sched, Hooks{}, zaptest.NewLogger(t))
		require.NoError(t, r.Run(context.Background(), 100))
	})

	t.Run("HookErrorAbortsRun", func(t *testing.T) {
		boom := errors.New("disk full")
		var vals []int
		hooks := Hooks{
			OnSave: func(i int) error { return boom },
			OnVal:  func(i int) error { vals = append(vals, i); return nil },
		}

		r := NewRunner(sched, hooks, zaptest.NewLogger(t))
		err := r.Run(context.Background(), 20)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "save hook failed at iteration 10")
		// save fires before val at iteration 10, so only the val at 5 ran
		assert.Equal(t, []int{5}, vals)
	})

	t.Run("CancelMidRunStopsTheWalk", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var reports []int
		hooks := Hooks{
			OnReport: func(i int) error {
				reports = append(reports, i)
				if i == 6 {
					cancel()
				}
				return nil
			},
		}

		r := NewRunner(sched, hooks, zaptest.NewLogger(t))
		err := r.Run(ctx, 1000)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []int{2, 4, 6}, reports)
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := NewRunner(sched, Hooks{}, zaptest.NewLogger(t))
		err := r.Run(ctx, 20)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NegativeIterationCount", func(t *testing.T) {
		r := NewRunner(sched, Hooks{}, zaptest.NewLogger(t))
		err := r.Run(context.Background(), -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be non-negative")
	})

	t.Run("ZeroIterationsIsANoop", func(t *testing.T) {
		r := NewRunner(sched, Hooks{}, zaptest.NewLogger(t))
		require.NoError(t, r.Run(context.Background(), 0))
	})
}
