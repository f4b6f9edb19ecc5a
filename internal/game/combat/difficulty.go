package combat

// Params holds the tunable difficulty values for one encounter. They are
// derived once at encounter start and never change mid-fight; adaptive
// difficulty steers content selection instead (see Engine).
type Params struct {
	// TimePerChar is the seconds of typing time granted per target character.
	TimePerChar float64
	// MinTime is the lower clamp for the word timer, in seconds.
	MinTime float64
	// MaxTime is the upper clamp for the word timer, in seconds.
	MaxTime float64
	// SpeedBonusWPM is the WPM at or above which the speed bonus applies.
	SpeedBonusWPM float64
	// AccuracyThreshold is the accuracy below which damage is penalized.
	AccuracyThreshold float64
	// ComboDamageMult is the damage multiplier gained per combo step.
	ComboDamageMult float64
	// MaxComboMult caps the combo multiplier.
	MaxComboMult float64
	// PerfectMult is the damage multiplier for perfect words.
	PerfectMult float64
	// CanInterrupt allows the enemy to force-fail a word mid-typing.
	CanInterrupt bool
	// InterruptChance is the per-second interrupt probability.
	InterruptChance float64
}

// DefaultParams returns the floor-1 baseline tuning.
func DefaultParams() Params {
	return Params{
		TimePerChar:       0.3,
		MinTime:           3.0,
		MaxTime:           20.0,
		SpeedBonusWPM:     60.0,
		AccuracyThreshold: 0.8,
		ComboDamageMult:   0.1,
		MaxComboMult:      2.0,
		PerfectMult:       1.5,
		CanInterrupt:      false,
		InterruptChance:   0.0,
	}
}

// ForFloor derives the difficulty for a dungeon floor. Timing tightens and
// thresholds rise with depth; interrupts switch on from floor 5.
// Floors below 1 are treated as floor 1.
//
// Postcondition: TimePerChar >= 0.15 and MinTime >= 2.0.
func ForFloor(floor int) Params {
	if floor < 1 {
		floor = 1
	}
	base := DefaultParams()
	ff := float64(floor-1) * 0.1

	p := base
	p.TimePerChar = base.TimePerChar - ff*0.02
	if p.TimePerChar < 0.15 {
		p.TimePerChar = 0.15
	}
	p.MinTime = base.MinTime - ff
	if p.MinTime < 2.0 {
		p.MinTime = 2.0
	}
	p.SpeedBonusWPM = base.SpeedBonusWPM + ff*10.0
	p.AccuracyThreshold = base.AccuracyThreshold + ff*0.05
	if floor >= 5 {
		p.CanInterrupt = true
		p.InterruptChance = 0.1 + float64(floor-5)*0.05
	}
	return p
}

// ForBoss derives boss difficulty for a floor: tighter timing, interrupts
// always on, and a doubled perfect-word multiplier.
func ForBoss(floor int) Params {
	p := ForFloor(floor)
	p.TimePerChar *= 0.9
	p.CanInterrupt = true
	p.InterruptChance = 0.15
	p.PerfectMult = 2.0
	return p
}

// TimeLimit returns the typing time budget in seconds for a target of
// wordLen characters, clamped to [MinTime, MaxTime].
func (p Params) TimeLimit(wordLen int) float64 {
	t := float64(wordLen) * p.TimePerChar
	if t < p.MinTime {
		return p.MinTime
	}
	if t > p.MaxTime {
		return p.MaxTime
	}
	return t
}
