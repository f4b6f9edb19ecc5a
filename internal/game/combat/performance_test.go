package combat_test

import (
	"testing"

	"github.com/inkhollow/wordwraith/internal/game/combat"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTracker_EmptyAverages(t *testing.T) {
	var tr combat.Tracker
	assert.Zero(t, tr.AverageWPM())
	assert.InDelta(t, 1.0, tr.AverageAccuracy(), 1e-9) // nothing typed is vacuously accurate
}

func TestTracker_RecordWord_RollingWindowEvictsOldest(t *testing.T) {
	var tr combat.Tracker
	for i := 0; i < 7; i++ {
		tr.RecordWord(float64(10*i), 1.0, false)
	}
	assert.Len(t, tr.RecentWPM, 5)
	assert.Len(t, tr.RecentAccuracy, 5)
	// Samples 0 and 10 were evicted; window holds 20..60.
	assert.InDelta(t, 20.0, tr.RecentWPM[0], 1e-9)
	assert.InDelta(t, 40.0, tr.AverageWPM(), 1e-9)
}

func TestTracker_RecordWord_PerfectStreak(t *testing.T) {
	var tr combat.Tracker
	tr.RecordWord(40, 1.0, true)
	tr.RecordWord(40, 1.0, true)
	assert.Equal(t, 2, tr.PerfectStreak)
	assert.Equal(t, 2, tr.TotalPerfect)

	tr.RecordWord(40, 0.8, false)
	assert.Equal(t, 0, tr.PerfectStreak, "imperfect word breaks the streak")
	assert.Equal(t, 2, tr.TotalPerfect, "lifetime count survives the break")
}

func TestTracker_RecordWord_PeakWPM(t *testing.T) {
	var tr combat.Tracker
	tr.RecordWord(42, 1.0, false)
	tr.RecordWord(88, 1.0, false)
	tr.RecordWord(31, 1.0, false)
	assert.InDelta(t, 88.0, tr.PeakWPM, 1e-9)
}

func TestTracker_Counters(t *testing.T) {
	var tr combat.Tracker
	tr.RecordMistake()
	tr.RecordMistake()
	tr.RecordBackspace()
	assert.Equal(t, 2, tr.TotalMistakes)
	assert.Equal(t, 1, tr.TotalBackspaces)
}

func TestTracker_PerformingWell(t *testing.T) {
	tests := []struct {
		name string
		wpm  float64
		acc  float64
		want bool
	}{
		{"fast and clean", 60, 0.99, true},
		{"fast but sloppy", 60, 0.95, false}, // threshold is strict
		{"clean but slow", 50, 0.99, false},
		{"both at threshold", 50, 0.95, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tr combat.Tracker
			tr.RecordWord(tc.wpm, tc.acc, false)
			assert.Equal(t, tc.want, tr.PerformingWell())
		})
	}
}

func TestTracker_Struggling(t *testing.T) {
	tests := []struct {
		name string
		wpm  float64
		acc  float64
		want bool
	}{
		{"slow", 20, 0.9, true},
		{"inaccurate", 40, 0.6, true},
		{"slow and inaccurate", 10, 0.5, true},
		{"at both thresholds", 25, 0.7, false}, // thresholds are strict
		{"healthy", 40, 0.9, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tr combat.Tracker
			tr.RecordWord(tc.wpm, tc.acc, false)
			assert.Equal(t, tc.want, tr.Struggling())
		})
	}
}

func TestTracker_EmptyWindowCountsAsStruggling(t *testing.T) {
	var tr combat.Tracker
	// AverageWPM 0 and AverageAccuracy 1.0: the WPM side fails
	// PerformingWell, and Struggling trips on WPM < 25.
	assert.False(t, tr.PerformingWell())
	assert.True(t, tr.Struggling())
}

func TestTracker_Property_WindowNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var tr combat.Tracker
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		for i := 0; i < n; i++ {
			tr.RecordWord(rapid.Float64Range(0, 200).Draw(rt, "wpm"),
				rapid.Float64Range(0, 1).Draw(rt, "acc"),
				rapid.Bool().Draw(rt, "perfect"))
		}
		assert.LessOrEqual(rt, len(tr.RecentWPM), 5)
		assert.LessOrEqual(rt, len(tr.RecentAccuracy), 5)
	})
}

func TestTracker_Property_AveragesStayWithinSampleBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var tr combat.Tracker
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		for i := 0; i < n; i++ {
			tr.RecordWord(rapid.Float64Range(0, 300).Draw(rt, "wpm"),
				rapid.Float64Range(0, 1).Draw(rt, "acc"),
				false)
		}
		assert.GreaterOrEqual(rt, tr.AverageWPM(), 0.0)
		assert.LessOrEqual(rt, tr.AverageWPM(), 300.0)
		assert.GreaterOrEqual(rt, tr.AverageAccuracy(), 0.0)
		assert.LessOrEqual(rt, tr.AverageAccuracy(), 1.0)
		assert.GreaterOrEqual(rt, tr.PeakWPM, tr.AverageWPM())
	})
}

func TestTracker_Property_PerfectStreakNeverExceedsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var tr combat.Tracker
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		for i := 0; i < n; i++ {
			tr.RecordWord(50, 1.0, rapid.Bool().Draw(rt, "perfect"))
		}
		assert.LessOrEqual(rt, tr.PerfectStreak, tr.TotalPerfect)
		assert.GreaterOrEqual(rt, tr.PerfectStreak, 0)
	})
}
