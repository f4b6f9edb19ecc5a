package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inkhollow/wordwraith/internal/content"
	"github.com/inkhollow/wordwraith/internal/game/enemy"
	"github.com/inkhollow/wordwraith/internal/game/player"
	"github.com/inkhollow/wordwraith/internal/game/rng"
	"github.com/inkhollow/wordwraith/internal/scripting"
)

// DefaultFloors is the tower height when RunConfig leaves it unset.
const DefaultFloors = 10

// bossInterval places a boss fight on every Nth floor.
const bossInterval = 5

// RunConfig assembles a tower run.
type RunConfig struct {
	Player  *player.Player
	Enemies *enemy.Registry
	Words   *content.Database
	Rand    rng.Source
	// Scripts is optional; when set its snapshot feed follows the current
	// encounter and its hooks flavor every fight.
	Scripts *scripting.Manager
	// Logger is optional; nil uses a no-op logger.
	Logger *zap.Logger
	// StartFloor below 1 is treated as 1.
	StartFloor int
	// Floors is the top of the tower; 0 uses DefaultFloors.
	Floors int
	// FleeChance overrides the base flee chance when > 0.
	FleeChance float64
}

// Totals accumulate across a run's encounters.
type Totals struct {
	XP             int
	Gold           int
	WordsCompleted int
	PerfectWords   int
	BestCombo      int
	PeakWPM        float64
	FloorsCleared  int
}

// Run walks the player up the tower floor by floor: a fresh enemy per floor,
// a boss on every fifth, reports and lifetime totals accumulated as fights
// resolve. Victory advances the floor, fleeing retries it, defeat ends the
// run. Not safe for concurrent use.
type Run struct {
	player  *player.Player
	enemies *enemy.Registry
	words   *content.Database
	rand    rng.Source
	scripts *scripting.Manager
	logger  *zap.Logger

	floor      int
	top        int
	fleeChance float64
	current    *Encounter
	reports    []Report
	totals     Totals
}

// NewRun validates the configuration and places the player on the start floor.
func NewRun(cfg RunConfig) (*Run, error) {
	if cfg.Player == nil {
		return nil, errors.New("run requires a player")
	}
	if cfg.Enemies == nil {
		return nil, errors.New("run requires an enemy registry")
	}
	if cfg.Words == nil {
		return nil, errors.New("run requires a word database")
	}
	if cfg.Rand == nil {
		return nil, errors.New("run requires a randomness source")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	floor := cfg.StartFloor
	if floor < 1 {
		floor = 1
	}
	top := cfg.Floors
	if top <= 0 {
		top = DefaultFloors
	}
	if floor > top {
		return nil, fmt.Errorf("start floor %d is above the tower top %d", floor, top)
	}

	return &Run{
		player:     cfg.Player,
		enemies:    cfg.Enemies,
		words:      cfg.Words,
		rand:       cfg.Rand,
		scripts:    cfg.Scripts,
		logger:     logger,
		floor:      floor,
		top:        top,
		fleeChance: cfg.FleeChance,
	}, nil
}

// NextEncounter spawns the current floor's enemy and builds its encounter.
// Boss floors draw from the boss pool when the registry has one.
//
// Precondition: the run is not finished and any previous encounter has been
// completed with CompleteEncounter.
func (r *Run) NextEncounter() (*Encounter, error) {
	if r.Finished() {
		return nil, errors.New("run is finished")
	}
	if r.current != nil {
		return nil, errors.New("an encounter is already in progress")
	}

	tmpl, err := r.pickTemplate()
	if err != nil {
		return nil, err
	}
	foe, err := enemy.Spawn(tmpl, r.floor, r.rand)
	if err != nil {
		return nil, fmt.Errorf("spawning %s on floor %d: %w", tmpl.ID, r.floor, err)
	}

	var hooks Hooks
	if r.scripts != nil {
		hooks = r.scripts
	}
	enc, err := New(Config{
		Player:     r.player,
		Enemy:      foe,
		Floor:      r.floor,
		Words:      r.words.ForTheme(foe.TypingTheme),
		Rand:       r.rand,
		FleeChance: r.fleeChance,
		Hooks:      hooks,
		Logger:     r.logger,
	})
	if err != nil {
		return nil, err
	}
	if r.scripts != nil {
		r.scripts.Snapshot = enc.Snapshot
	}

	r.current = enc
	r.logger.Info("encounter begins",
		zap.Int("floor", r.floor),
		zap.String("enemy", foe.Name),
		zap.String("tier", string(foe.Tier)),
		zap.Int("enemy_hp", foe.MaxHP),
	)
	return enc, nil
}

// CompleteEncounter folds the finished encounter into the run: the report is
// stored, totals updated, and the floor advanced on victory. Fleeing keeps
// the player on the same floor; defeat ends the run.
//
// Precondition: the current encounter must be finished.
func (r *Run) CompleteEncounter() (Report, error) {
	if r.current == nil {
		return Report{}, errors.New("no encounter in progress")
	}
	report, ok := r.current.Report()
	if !ok {
		return Report{}, errors.New("encounter is not finished")
	}

	r.reports = append(r.reports, report)
	r.totals.XP += report.XPEarned
	r.totals.Gold += report.GoldEarned
	r.totals.WordsCompleted += report.WordsCompleted
	r.totals.PerfectWords += report.PerfectWords
	if report.BestCombo > r.totals.BestCombo {
		r.totals.BestCombo = report.BestCombo
	}
	if report.PeakWPM > r.totals.PeakWPM {
		r.totals.PeakWPM = report.PeakWPM
	}
	if report.Victory {
		r.totals.FloorsCleared++
		r.floor++
		r.player.RestoreShield()
	}

	r.logger.Info("encounter complete",
		zap.Int("floor", report.Floor),
		zap.Bool("victory", report.Victory),
		zap.Bool("fled", report.Fled),
		zap.Int("xp", report.XPEarned),
		zap.Int("gold", report.GoldEarned),
	)

	r.current = nil
	return report, nil
}

// pickTemplate chooses the floor's template: the boss pool on boss floors,
// the weighted normal/elite draw otherwise.
func (r *Run) pickTemplate() (*enemy.Template, error) {
	if r.floor%bossInterval == 0 && r.enemies.HasBoss() {
		return r.enemies.Pick(enemy.TierBoss, r.rand)
	}
	return r.enemies.PickForFloor(r.floor, r.rand)
}

// Current returns the encounter in progress, or nil between fights.
func (r *Run) Current() *Encounter { return r.current }

// Floor returns the floor the player is fighting on or about to fight on.
func (r *Run) Floor() int { return r.floor }

// Top returns the tower's highest floor.
func (r *Run) Top() int { return r.top }

// Cleared reports whether every floor up to the top has been beaten.
func (r *Run) Cleared() bool { return r.floor > r.top }

// Finished reports whether the run is over, by clearing the tower or by the
// player falling.
func (r *Run) Finished() bool {
	return r.Cleared() || !r.player.Alive()
}

// Reports returns a copy of the per-encounter reports so far.
func (r *Run) Reports() []Report {
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Totals returns the accumulated run totals.
func (r *Run) Totals() Totals { return r.totals }

// Player returns the player bound to the run.
func (r *Run) Player() *player.Player { return r.player }
