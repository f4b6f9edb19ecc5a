package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkhollow/wordwraith/internal/game/combat"
)

// Report is the persistent record of one finished encounter. The storage
// layer writes it verbatim; the UI shows it on the end screen.
type Report struct {
	ID             uuid.UUID
	FoughtAt       time.Time
	PlayerName     string
	EnemyName      string
	Floor          int
	Victory        bool
	Fled           bool
	TurnsTaken     int
	WordsCompleted int
	BestCombo      int
	Accuracy       float64
	PeakWPM        float64
	PerfectWords   int
	XPEarned       int
	GoldEarned     int
	Duration       time.Duration
}

// Report summarizes the encounter once it has reached a terminal phase.
//
// Postcondition: ok is false until Finished() is true.
func (e *Encounter) Report() (Report, bool) {
	res, ok := e.engine.Result()
	if !ok {
		return Report{}, false
	}
	return Report{
		ID:             e.ID,
		FoughtAt:       e.started,
		PlayerName:     e.player.Name,
		EnemyName:      e.enemy.Name,
		Floor:          e.engine.Floor(),
		Victory:        res.Victory,
		Fled:           e.engine.Phase() == combat.PhaseFled,
		TurnsTaken:     res.TurnsTaken,
		WordsCompleted: res.WordsCompleted,
		BestCombo:      res.BestCombo,
		Accuracy:       res.Accuracy,
		PeakWPM:        res.PeakWPM,
		PerfectWords:   res.PerfectWords,
		XPEarned:       res.XP,
		GoldEarned:     res.Gold,
		Duration:       time.Since(e.started),
	}, true
}
