package combat

// Result summarizes a finished encounter. XP and Gold are zero unless the
// encounter ended in victory; Accuracy is the rolling average over the last
// words of the fight, not a lifetime figure.
type Result struct {
	Victory        bool
	XP             int
	Gold           int
	TurnsTaken     int
	WordsCompleted int
	BestCombo      int
	Accuracy       float64
	PeakWPM        float64
	PerfectWords   int
}
