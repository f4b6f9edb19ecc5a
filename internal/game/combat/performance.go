package combat

// rollingWindow is the number of recent words kept for the rolling averages.
const rollingWindow = 5

// Tracker accumulates typing performance over one encounter. It feeds both
// the statistics in the final Result and the adaptive content-difficulty
// loop. Fields are exported so the engine and hosts can read them directly;
// mutation goes through the Record methods (BestCombo is maintained by the
// engine as the running max of its combo counter).
type Tracker struct {
	// RecentWPM holds the WPM of the last few resolved words, oldest first.
	RecentWPM []float64
	// RecentAccuracy holds the accuracy of the last few resolved words.
	RecentAccuracy []float64
	// PerfectStreak counts consecutive perfect words.
	PerfectStreak int
	// TotalPerfect counts perfect words across the encounter.
	TotalPerfect int
	// TotalMistakes counts wrong keystrokes across the encounter.
	TotalMistakes int
	// TotalBackspaces counts backspaces across the encounter.
	TotalBackspaces int
	// PeakWPM is the highest word WPM observed.
	PeakWPM float64
	// BestCombo is the highest combo reached.
	BestCombo int
}

// RecordWord pushes one resolved word into the rolling windows, evicting the
// oldest sample beyond the window size, and updates the streak and peak
// counters.
//
// Postcondition: len(RecentWPM) <= rollingWindow and likewise for accuracy.
func (t *Tracker) RecordWord(wpm, accuracy float64, perfect bool) {
	t.RecentWPM = append(t.RecentWPM, wpm)
	if len(t.RecentWPM) > rollingWindow {
		t.RecentWPM = t.RecentWPM[1:]
	}

	t.RecentAccuracy = append(t.RecentAccuracy, accuracy)
	if len(t.RecentAccuracy) > rollingWindow {
		t.RecentAccuracy = t.RecentAccuracy[1:]
	}

	if perfect {
		t.PerfectStreak++
		t.TotalPerfect++
	} else {
		t.PerfectStreak = 0
	}

	if wpm > t.PeakWPM {
		t.PeakWPM = wpm
	}
}

// RecordMistake counts one wrong keystroke.
func (t *Tracker) RecordMistake() {
	t.TotalMistakes++
}

// RecordBackspace counts one backspace.
func (t *Tracker) RecordBackspace() {
	t.TotalBackspaces++
}

// AverageWPM returns the mean WPM over the rolling window, 0 when empty.
func (t *Tracker) AverageWPM() float64 {
	if len(t.RecentWPM) == 0 {
		return 0
	}
	var sum float64
	for _, v := range t.RecentWPM {
		sum += v
	}
	return sum / float64(len(t.RecentWPM))
}

// AverageAccuracy returns the mean accuracy over the rolling window,
// 1.0 when empty (nothing typed is vacuously accurate).
func (t *Tracker) AverageAccuracy() float64 {
	if len(t.RecentAccuracy) == 0 {
		return 1.0
	}
	var sum float64
	for _, v := range t.RecentAccuracy {
		sum += v
	}
	return sum / float64(len(t.RecentAccuracy))
}

// PerformingWell reports whether the rolling averages are strong enough to
// bump content difficulty up a tier.
func (t *Tracker) PerformingWell() bool {
	return t.AverageWPM() > 50.0 && t.AverageAccuracy() > 0.95
}

// Struggling reports whether the rolling averages are weak enough to drop
// content difficulty down a tier.
func (t *Tracker) Struggling() bool {
	return t.AverageWPM() < 25.0 || t.AverageAccuracy() < 0.7
}
