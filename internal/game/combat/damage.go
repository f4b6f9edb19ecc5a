package combat

import "math"

// DamageBreakdown records every step of the damage pipeline for one word.
// Multiplier fields hold 1.0 when their step did not apply; the Applied
// flags distinguish "applied with multiplier 1.0" (possible exactly at the
// speed threshold) from "not applied".
type DamageBreakdown struct {
	// Base is trunc(10 * sqrt(wordLen/5)).
	Base int
	// ComboMult is 1 + min(combo*ComboDamageMult, MaxComboMult-1).
	ComboMult float64
	// ComboBonus is the integer damage attributable to the combo step.
	ComboBonus int
	// PerfectMult is Params.PerfectMult when the word was perfect.
	PerfectMult    float64
	PerfectApplied bool
	// SpeedMult is 1 + (wpm-threshold)/100 when wpm met the threshold.
	SpeedMult    float64
	SpeedApplied bool
	// AccuracyMult is max(0.5, 1 - (threshold-accuracy)*0.5) when accuracy
	// fell below the threshold.
	AccuracyMult    float64
	AccuracyApplied bool
	// Total is the final damage after all steps, truncated toward zero.
	Total int
}

// ComputeDamage runs the damage pipeline for a resolved word. The modifier
// order is fixed and must not be reordered: combo, perfect, speed, accuracy.
// Every step truncates its running total toward zero, so the result is a
// pure deterministic function of the inputs.
//
// combo is the count carried into the word, before the success increments it.
//
// Postcondition: Total >= 0.
func ComputeDamage(wordLen int, wpm, accuracy float64, combo int, perfect bool, p Params) DamageBreakdown {
	b := DamageBreakdown{
		ComboMult:    1.0,
		PerfectMult:  1.0,
		SpeedMult:    1.0,
		AccuracyMult: 1.0,
	}

	b.Base = int(10.0 * math.Sqrt(float64(wordLen)/5.0))
	damage := b.Base

	// Combo multiplier.
	gain := float64(combo) * p.ComboDamageMult
	if gain > p.MaxComboMult-1.0 {
		gain = p.MaxComboMult - 1.0
	}
	b.ComboMult = 1.0 + gain
	b.ComboBonus = int(float64(damage) * gain)
	damage = int(float64(damage) * b.ComboMult)

	// Perfect word multiplier.
	if perfect {
		b.PerfectMult = p.PerfectMult
		b.PerfectApplied = true
		damage = int(float64(damage) * b.PerfectMult)
	}

	// Speed bonus.
	if wpm >= p.SpeedBonusWPM {
		b.SpeedMult = 1.0 + (wpm-p.SpeedBonusWPM)/100.0
		b.SpeedApplied = true
		damage = int(float64(damage) * b.SpeedMult)
	}

	// Accuracy penalty, floored at half damage.
	if accuracy < p.AccuracyThreshold {
		mult := 1.0 - (p.AccuracyThreshold-accuracy)*0.5
		if mult < 0.5 {
			mult = 0.5
		}
		b.AccuracyMult = mult
		b.AccuracyApplied = true
		damage = int(float64(damage) * mult)
	}

	b.Total = damage
	return b
}
