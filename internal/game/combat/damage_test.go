package combat_test

import (
	"testing"

	"github.com/inkhollow/wordwraith/internal/game/combat"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestComputeDamage_BaseFormula(t *testing.T) {
	p := combat.DefaultParams()
	tests := []struct {
		wordLen int
		want    int // trunc(10 * sqrt(len/5))
	}{
		{1, 4},
		{3, 7},
		{5, 10},
		{10, 14},
		{20, 20},
		{45, 30},
	}
	for _, tc := range tests {
		b := combat.ComputeDamage(tc.wordLen, 30, 1.0, 0, false, p)
		assert.Equal(t, tc.want, b.Base, "wordLen=%d", tc.wordLen)
		// No modifier applies: slow, accurate, no combo, not perfect.
		assert.Equal(t, tc.want, b.Total, "wordLen=%d", tc.wordLen)
	}
}

func TestComputeDamage_ComboMultiplier(t *testing.T) {
	p := combat.DefaultParams() // ComboDamageMult 0.1, MaxComboMult 2.0
	tests := []struct {
		combo int
		want  float64
	}{
		{0, 1.0},
		{1, 1.1},
		{9, 1.9},  // the multiplier uses the combo carried into the word
		{10, 2.0}, // cap
		{50, 2.0},
	}
	for _, tc := range tests {
		b := combat.ComputeDamage(10, 30, 1.0, tc.combo, false, p)
		assert.InDelta(t, tc.want, b.ComboMult, 1e-9, "combo=%d", tc.combo)
	}
}

func TestComputeDamage_ComboBonusIsTheStepDelta(t *testing.T) {
	p := combat.DefaultParams()
	b := combat.ComputeDamage(10, 30, 1.0, 5, false, p)
	// Base 14, multiplier 1.5: bonus = trunc(14 * 0.5) = 7, total trunc(14*1.5) = 21.
	assert.Equal(t, 14, b.Base)
	assert.Equal(t, 7, b.ComboBonus)
	assert.Equal(t, 21, b.Total)
}

func TestComputeDamage_PerfectMultiplier(t *testing.T) {
	p := combat.DefaultParams()
	b := combat.ComputeDamage(3, 30, 1.0, 0, true, p)
	// Base 7, perfect x1.5 = trunc(10.5) = 10.
	assert.True(t, b.PerfectApplied)
	assert.InDelta(t, 1.5, b.PerfectMult, 1e-9)
	assert.Equal(t, 10, b.Total)

	b = combat.ComputeDamage(3, 30, 1.0, 0, false, p)
	assert.False(t, b.PerfectApplied)
	assert.Equal(t, 7, b.Total)
}

func TestComputeDamage_SpeedBonus(t *testing.T) {
	p := combat.DefaultParams() // SpeedBonusWPM 60
	b := combat.ComputeDamage(10, 90, 1.0, 0, false, p)
	assert.True(t, b.SpeedApplied)
	assert.InDelta(t, 1.3, b.SpeedMult, 1e-9)
	assert.Equal(t, 18, b.Total) // trunc(14 * 1.3)

	// Exactly at the threshold the bonus applies with multiplier 1.0.
	b = combat.ComputeDamage(10, 60, 1.0, 0, false, p)
	assert.True(t, b.SpeedApplied)
	assert.InDelta(t, 1.0, b.SpeedMult, 1e-9)

	b = combat.ComputeDamage(10, 59.9, 1.0, 0, false, p)
	assert.False(t, b.SpeedApplied)
}

func TestComputeDamage_AccuracyPenalty(t *testing.T) {
	p := combat.DefaultParams() // AccuracyThreshold 0.8
	tests := []struct {
		accuracy float64
		wantMult float64
	}{
		{0.5, 0.85}, // max(0.5, 1 - 0.3*0.5)
		{0.7, 0.95},
		{0.0, 0.6},
	}
	for _, tc := range tests {
		b := combat.ComputeDamage(10, 30, tc.accuracy, 0, false, p)
		assert.True(t, b.AccuracyApplied, "accuracy=%v", tc.accuracy)
		assert.InDelta(t, tc.wantMult, b.AccuracyMult, 1e-9, "accuracy=%v", tc.accuracy)
	}

	b := combat.ComputeDamage(10, 30, 0.8, 0, false, p)
	assert.False(t, b.AccuracyApplied, "at the threshold no penalty applies")
}

func TestComputeDamage_PenaltyFloorsAtHalf(t *testing.T) {
	p := combat.DefaultParams()
	p.AccuracyThreshold = 2.0 // force a deep deficit
	b := combat.ComputeDamage(10, 30, 0.0, 0, false, p)
	assert.InDelta(t, 0.5, b.AccuracyMult, 1e-9)
}

func TestComputeDamage_EachStepTruncates(t *testing.T) {
	p := combat.DefaultParams()
	// Base 7; combo 1 -> trunc(7*1.1) = 7 (not 7.7 carried forward);
	// perfect -> trunc(7*1.5) = 10.
	b := combat.ComputeDamage(3, 30, 1.0, 1, true, p)
	assert.Equal(t, 7, b.Base)
	assert.Equal(t, 10, b.Total)
}

func TestComputeDamage_Property_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		wordLen := rapid.IntRange(1, 200).Draw(rt, "word_len")
		wpm := rapid.Float64Range(0, 250).Draw(rt, "wpm")
		accuracy := rapid.Float64Range(0, 1).Draw(rt, "accuracy")
		combo := rapid.IntRange(0, 100).Draw(rt, "combo")
		perfect := rapid.Bool().Draw(rt, "perfect")
		floor := rapid.IntRange(1, 15).Draw(rt, "floor")
		p := combat.ForFloor(floor)

		a := combat.ComputeDamage(wordLen, wpm, accuracy, combo, perfect, p)
		b := combat.ComputeDamage(wordLen, wpm, accuracy, combo, perfect, p)
		assert.Equal(rt, a, b)
	})
}

func TestComputeDamage_Property_TotalNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		wordLen := rapid.IntRange(1, 200).Draw(rt, "word_len")
		wpm := rapid.Float64Range(0, 250).Draw(rt, "wpm")
		accuracy := rapid.Float64Range(0, 1).Draw(rt, "accuracy")
		combo := rapid.IntRange(0, 100).Draw(rt, "combo")
		perfect := rapid.Bool().Draw(rt, "perfect")
		b := combat.ComputeDamage(wordLen, wpm, accuracy, combo, perfect, combat.DefaultParams())
		assert.GreaterOrEqual(rt, b.Total, 0)
		assert.GreaterOrEqual(rt, b.ComboBonus, 0)
	})
}

func TestComputeDamage_Property_BonusesOnlyHelp(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		wordLen := rapid.IntRange(1, 100).Draw(rt, "word_len")
		combo := rapid.IntRange(0, 50).Draw(rt, "combo")
		wpm := rapid.Float64Range(60, 250).Draw(rt, "wpm")
		p := combat.DefaultParams()

		plain := combat.ComputeDamage(wordLen, 30, 1.0, 0, false, p)
		boosted := combat.ComputeDamage(wordLen, wpm, 1.0, combo, true, p)
		assert.GreaterOrEqual(rt, boosted.Total, plain.Total)
	})
}
