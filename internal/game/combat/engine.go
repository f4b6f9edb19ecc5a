package combat

import (
	"errors"
	"fmt"
)

// WordSource supplies typing targets by difficulty tier.
//
// Precondition: both methods must return a non-empty string for any
// difficulty in 1..10. An empty return is a contract violation; New rejects
// it with an error and mid-encounter draws panic on it.
type WordSource interface {
	Word(difficulty int) string
	Sentence(difficulty int) string
}

// Source is the engine's view of a random number generator. Interrupt and
// flee rolls go through it so tests can force either branch.
// Using a local interface avoids a circular import.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Defender is the subset of the player model the engine touches during an
// enemy action. Damage arrives after the engine has already subtracted
// shield absorption.
type Defender interface {
	TakeDamage(amount int)
	CurrentHP() int
}

// EnemyInfo is the engine's read-only view of the opposing enemy. The engine
// mirrors HP internally; the host copies it back out when the fight ends.
type EnemyInfo struct {
	Name        string
	MaxHP       int
	AttackPower int
	XP          int
	Gold        int
	IsBoss      bool
	TypingTheme string
	// AttackMessages are flavor verbs for enemy attacks, e.g.
	// "slashes at you". One is drawn per enemy turn.
	AttackMessages []string
}

// DefaultFleeChance is the flee success probability when Config leaves it unset.
const DefaultFleeChance = 0.5

// Config assembles everything one encounter needs.
type Config struct {
	Enemy EnemyInfo
	// Floor selects the difficulty curve; values below 1 are treated as 1.
	Floor int
	Words WordSource
	Rand  Source
	// Shield is the player's starting shield points, absorbed before HP.
	Shield int
	// FleeChance overrides DefaultFleeChance when > 0.
	FleeChance float64
	// TimeScale multiplies TimePerChar when > 0; hosts use it to apply
	// haste and slow effects without touching the difficulty curve.
	TimeScale float64
}

// Engine is the aggregate root of a single encounter. It is not safe for
// concurrent use: the host loop must serialize keystroke, tick, and enemy
// turn delivery. Every mutator returns the events that call produced, in
// causal order; a mutator called in a phase that does not permit it returns
// an empty batch and changes nothing.
type Engine struct {
	enemy      EnemyInfo
	enemyHP    int
	enemyMaxHP int

	playerShield int

	currentWord string
	wordRunes   []rune
	typedInput  []rune
	charCorrect []bool

	timeLimit     float64
	timeRemaining float64
	typingStarted bool

	turn           int
	phase          Phase
	combo          int
	wordsCompleted int

	params Params
	perf   Tracker

	words        WordSource
	rng          Source
	floor        int
	useSentences bool
	fleeChance   float64

	events []Event
}

// New builds an engine for one encounter against enemy on the given floor.
// Boss enemies get the tighter ForBoss curve; sentences replace single words
// for bosses and from floor 5 onward. The first typing target is drawn here.
//
// Precondition: cfg.Words and cfg.Rand must be non-nil; enemy MaxHP must be
// positive.
// Postcondition: Returns an engine in PhasePlayerTurn with turn 1, or an
// error describing the violated contract.
func New(cfg Config) (*Engine, error) {
	if cfg.Words == nil {
		return nil, errors.New("combat: word source must not be nil")
	}
	if cfg.Rand == nil {
		return nil, errors.New("combat: random source must not be nil")
	}
	if cfg.Enemy.MaxHP <= 0 {
		return nil, fmt.Errorf("combat: enemy %q has non-positive max HP %d", cfg.Enemy.Name, cfg.Enemy.MaxHP)
	}

	floor := cfg.Floor
	if floor < 1 {
		floor = 1
	}

	var params Params
	if cfg.Enemy.IsBoss {
		params = ForBoss(floor)
	} else {
		params = ForFloor(floor)
	}
	if cfg.TimeScale > 0 {
		params.TimePerChar *= cfg.TimeScale
	}

	fleeChance := cfg.FleeChance
	if fleeChance <= 0 {
		fleeChance = DefaultFleeChance
	}

	e := &Engine{
		enemy:        cfg.Enemy,
		enemyHP:      cfg.Enemy.MaxHP,
		enemyMaxHP:   cfg.Enemy.MaxHP,
		playerShield: cfg.Shield,
		turn:         1,
		phase:        PhasePlayerTurn,
		params:       params,
		words:        cfg.Words,
		rng:          cfg.Rand,
		floor:        floor,
		useSentences: cfg.Enemy.IsBoss || floor >= 5,
		fleeChance:   fleeChance,
	}

	first := e.drawTarget(clampDifficulty(floor))
	if first == "" {
		return nil, fmt.Errorf("combat: word source returned an empty target for difficulty %d", clampDifficulty(floor))
	}
	e.setTarget(first)
	return e, nil
}

// OnChar evaluates one keystroke against the current target. The first
// keystroke of a word starts the timer, so idle time before typing never
// counts against WPM. Reaching full target length resolves the word
// immediately, correct ending or not.
func (e *Engine) OnChar(c rune) []Event {
	if e.phase != PhasePlayerTurn {
		return nil
	}

	// The timer only runs once typing has started.
	if !e.typingStarted {
		e.typingStarted = true
	}

	pos := len(e.typedInput)
	correct := pos < len(e.wordRunes) && e.wordRunes[pos] == c
	e.charCorrect = append(e.charCorrect, correct)
	e.typedInput = append(e.typedInput, c)

	if correct {
		e.emit(CharTyped{Correct: true, ComboMaintained: e.combo > 0})
	} else {
		e.perf.RecordMistake()
		e.emit(CharTyped{Correct: false, ComboMaintained: false})
	}

	if len(e.typedInput) >= len(e.wordRunes) {
		e.resolveWord()
	}

	return e.drain()
}

// OnBackspace removes the last typed character and its correctness entry.
// It never emits events; hosts re-read the buffer through accessors.
func (e *Engine) OnBackspace() []Event {
	if e.phase != PhasePlayerTurn {
		return nil
	}
	if len(e.typedInput) > 0 {
		e.typedInput = e.typedInput[:len(e.typedInput)-1]
		e.charCorrect = e.charCorrect[:len(e.charCorrect)-1]
		e.perf.RecordBackspace()
	}
	return e.drain()
}

// Update advances the word timer by delta seconds and applies timeout and
// interrupt policy. A word with zero keystrokes never times out, and the
// interrupt roll only happens while the word is still live; a tick that
// forces a timeout performs exactly one resolution.
//
// Precondition: delta should be the non-negative wall-clock seconds since
// the previous call; non-positive deltas are ignored.
func (e *Engine) Update(delta float64) []Event {
	if e.phase != PhasePlayerTurn || !e.typingStarted || delta <= 0 {
		return nil
	}

	e.timeRemaining -= delta
	if e.timeRemaining <= 0 {
		e.timeRemaining = 0
		e.forceResolve(FailTimeout)
		return e.drain()
	}

	if e.params.CanInterrupt && len(e.typedInput) > 0 {
		if e.rng.Float64() < e.params.InterruptChance*delta {
			e.emit(Message{Text: fmt.Sprintf("%s interrupts your typing!", e.enemy.Name)})
			e.forceResolve(FailInterrupted)
		}
	}

	return e.drain()
}

// ExecuteEnemyTurn applies the enemy's attack to p. Shield absorbs first:
// blocked = min(shield, attack power), and only the remainder reaches the
// player. The call either transitions to PhaseDefeat or draws the next word
// and returns control to the player.
//
// Precondition: p must not be nil.
func (e *Engine) ExecuteEnemyTurn(p Defender) []Event {
	if e.phase != PhaseEnemyTurn {
		return nil
	}

	raw := e.enemy.AttackPower
	blocked := e.playerShield
	if blocked > raw {
		blocked = raw
	}
	e.playerShield -= blocked
	actual := raw - blocked

	p.TakeDamage(actual)

	e.emit(DamageTaken{Amount: actual, Blocked: blocked})
	e.emit(Message{Text: fmt.Sprintf("%s %s for %d damage!", e.enemy.Name, e.attackLine(), actual)})

	if p.CurrentHP() <= 0 {
		e.emit(PlayerDefeated{})
		e.setPhase(PhaseDefeat)
	} else {
		e.startNextTurn()
	}

	return e.drain()
}

// TryFlee attempts to abandon the encounter. Boss fights always reject the
// attempt without consuming the turn; otherwise one roll against the flee
// chance decides between PhaseFled and handing the turn to the enemy.
func (e *Engine) TryFlee() []Event {
	if e.phase != PhasePlayerTurn && e.phase != PhaseEnemyTurn {
		return nil
	}

	if e.enemy.IsBoss {
		e.emit(Message{Text: "Cannot flee from a boss!"})
		return e.drain()
	}

	if e.rng.Float64() < e.fleeChance {
		e.emit(Message{Text: "You slip away from the fight."})
		e.setPhase(PhaseFled)
	} else {
		e.emit(Message{Text: "Failed to flee!"})
		e.setPhase(PhaseEnemyTurn)
	}

	return e.drain()
}

// Finished reports whether the encounter reached a terminal phase.
func (e *Engine) Finished() bool {
	return e.phase.Terminal()
}

// Result summarizes the encounter once it is finished.
//
// Postcondition: ok is false until Finished() is true.
func (e *Engine) Result() (Result, bool) {
	if !e.phase.Terminal() {
		return Result{}, false
	}
	r := Result{
		Victory:        e.phase == PhaseVictory,
		TurnsTaken:     e.turn,
		WordsCompleted: e.wordsCompleted,
		BestCombo:      e.perf.BestCombo,
		Accuracy:       e.perf.AverageAccuracy(),
		PeakWPM:        e.perf.PeakWPM,
		PerfectWords:   e.perf.TotalPerfect,
	}
	if r.Victory {
		r.XP = e.enemy.XP
		r.Gold = e.enemy.Gold
	}
	return r, true
}

// resolveWord judges a full-length word exactly once and routes it to the
// success or failure path. Both paths count toward words completed and feed
// the performance tracker.
func (e *Engine) resolveWord() {
	wpm := e.wpm()
	accuracy := e.wordAccuracy()
	// Exact match alone is not enough for perfect: the correctness trace
	// must be clean too.
	perfect := string(e.typedInput) == e.currentWord && allCorrect(e.charCorrect)

	e.recordResolution(wpm, accuracy, perfect)

	if string(e.typedInput) == e.currentWord {
		e.applyWordDamage(wpm, accuracy, perfect)
	} else {
		e.failWord(FailMistyped)
	}
}

// forceResolve resolves the current word as failed mid-typing. Timeouts and
// interrupts run the same bookkeeping as natural resolutions rather than
// discarding partial state.
func (e *Engine) forceResolve(reason FailReason) {
	e.recordResolution(e.wpm(), e.wordAccuracy(), false)
	e.failWord(reason)
}

// recordResolution feeds one word resolution into the tracker and the
// words-completed counter regardless of success.
func (e *Engine) recordResolution(wpm, accuracy float64, perfect bool) {
	e.perf.RecordWord(wpm, accuracy, perfect)
	e.wordsCompleted++
}

// applyWordDamage runs the damage pipeline for a successful word and applies
// the result to the enemy. The pipeline itself lives in ComputeDamage; this
// method turns the breakdown into events, in emission order: WordCompleted,
// DamageDealt, then the bonus events in pipeline order.
func (e *Engine) applyWordDamage(wpm, accuracy float64, perfect bool) {
	// The multiplier is computed from the combo carried into this word;
	// the increment lands after.
	b := ComputeDamage(len(e.wordRunes), wpm, accuracy, e.combo, perfect, e.params)
	damage := b.Total

	e.combo++
	if e.combo > e.perf.BestCombo {
		e.perf.BestCombo = e.combo
	}

	var bonuses []Event
	bonuses = append(bonuses, ComboIncreased{NewCombo: e.combo, BonusDamage: b.ComboBonus})

	// The streak bonus value is announced but never added to the damage total.
	if b.PerfectApplied {
		bonuses = append(bonuses, PerfectWordBonus{DamageMult: b.PerfectMult})
		if e.perf.PerfectStreak >= 3 {
			bonuses = append(bonuses, StreakBonus{
				Kind:  StreakPerfectWords,
				Count: e.perf.PerfectStreak,
				Bonus: e.perf.PerfectStreak * 5,
			})
		}
	}
	if b.SpeedApplied {
		bonuses = append(bonuses, SpeedBonus{WPM: wpm, DamageMult: b.SpeedMult})
	}
	if b.AccuracyApplied {
		bonuses = append(bonuses, AccuracyPenalty{Accuracy: accuracy, DamageReduction: 1.0 - b.AccuracyMult})
	}

	overkill := damage - e.enemyHP
	if overkill < 0 {
		overkill = 0
	}
	e.enemyHP -= damage
	if e.enemyHP < 0 {
		e.enemyHP = 0
	}

	e.emit(WordCompleted{Word: e.currentWord, WPM: wpm, Accuracy: accuracy, Perfect: perfect})
	e.emit(DamageDealt{Amount: damage, Critical: perfect, Overkill: overkill})
	for _, ev := range bonuses {
		e.emit(ev)
	}

	if e.enemyHP <= 0 {
		e.emit(EnemyDefeated{XP: e.enemy.XP, Gold: e.enemy.Gold})
		e.setPhase(PhaseVictory)
	} else {
		e.setPhase(PhaseEnemyTurn)
	}
}

// failWord emits the failure events, breaks the combo, and hands the turn to
// the enemy.
func (e *Engine) failWord(reason FailReason) {
	was := e.combo
	e.combo = 0

	e.emit(WordFailed{Word: e.currentWord, Typed: string(e.typedInput), Reason: reason})
	if was > 0 {
		e.emit(ComboLost{WasCombo: was})
	}
	e.setPhase(PhaseEnemyTurn)
}

// startNextTurn closes the current turn cycle, draws the next target at the
// performance-adjusted difficulty, and returns control to the player. Only
// content selection adapts; the difficulty params stay fixed.
func (e *Engine) startNextTurn() {
	e.turn++
	e.emit(TurnEnded{Turn: e.turn - 1})

	e.setTarget(e.drawTarget(e.effectiveDifficulty()))
	e.setPhase(PhasePlayerTurn)
}

// effectiveDifficulty maps the rolling performance onto a content tier:
// one above the floor when performing well, one below when struggling,
// clamped to 1..10.
func (e *Engine) effectiveDifficulty() int {
	d := e.floor
	if e.perf.PerformingWell() {
		d = e.floor + 1
	} else if e.perf.Struggling() {
		d = e.floor - 1
	}
	return clampDifficulty(d)
}

func (e *Engine) drawTarget(difficulty int) string {
	if e.useSentences {
		return e.words.Sentence(difficulty)
	}
	return e.words.Word(difficulty)
}

// setTarget installs a new typing target and resets the per-word state.
//
// Precondition: target must not be empty.
func (e *Engine) setTarget(target string) {
	if target == "" {
		panic("combat: word source returned an empty target")
	}
	e.currentWord = target
	e.wordRunes = []rune(target)
	e.typedInput = e.typedInput[:0]
	e.charCorrect = e.charCorrect[:0]
	e.timeLimit = e.params.TimeLimit(len(e.wordRunes))
	e.timeRemaining = e.timeLimit
	e.typingStarted = false
}

// setPhase performs a transition and emits its PhaseChanged event. Every
// phase change funnels through here; a same-phase call is a no-op so no
// transition is ever reported twice.
func (e *Engine) setPhase(to Phase) {
	if e.phase == to {
		return
	}
	from := e.phase
	e.phase = to
	e.emit(PhaseChanged{From: from, To: to})
}

// attackLine draws one of the enemy's attack verbs, with a plain fallback
// for templates that define none.
func (e *Engine) attackLine() string {
	if len(e.enemy.AttackMessages) == 0 {
		return "strikes at you"
	}
	return e.enemy.AttackMessages[e.rng.Intn(len(e.enemy.AttackMessages))]
}

// wpm computes words-per-minute for the current word: (chars/5) per elapsed
// minute. Zero when typing never started or no time has elapsed.
func (e *Engine) wpm() float64 {
	if !e.typingStarted || e.timeRemaining >= e.timeLimit {
		return 0
	}
	elapsed := e.timeLimit - e.timeRemaining
	if elapsed <= 0 {
		return 0
	}
	words := float64(len(e.typedInput)) / 5.0
	return words / (elapsed / 60.0)
}

// wordAccuracy is the share of correct entries in the correctness trace,
// vacuously 1.0 when nothing was typed.
func (e *Engine) wordAccuracy() float64 {
	if len(e.charCorrect) == 0 {
		return 1.0
	}
	correct := 0
	for _, ok := range e.charCorrect {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(e.charCorrect))
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// drain hands the buffered events to the caller and resets the buffer. The
// returned slice is owned by the caller.
func (e *Engine) drain() []Event {
	out := e.events
	e.events = nil
	return out
}

func allCorrect(trace []bool) bool {
	for _, ok := range trace {
		if !ok {
			return false
		}
	}
	return true
}

func clampDifficulty(d int) int {
	if d < 1 {
		return 1
	}
	if d > 10 {
		return 10
	}
	return d
}

// Accessors for hosts rendering the fight. Slices are copied so the engine
// retains exclusive ownership of its buffers.

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase { return e.phase }

// CurrentWord returns the active typing target.
func (e *Engine) CurrentWord() string { return e.currentWord }

// TypedInput returns what has been typed toward the current target.
func (e *Engine) TypedInput() string { return string(e.typedInput) }

// CharCorrectness returns a copy of the per-character correctness trace.
func (e *Engine) CharCorrectness() []bool {
	out := make([]bool, len(e.charCorrect))
	copy(out, e.charCorrect)
	return out
}

// TimeRemaining returns the seconds left on the word timer.
func (e *Engine) TimeRemaining() float64 { return e.timeRemaining }

// TimeLimit returns the full time budget for the current word.
func (e *Engine) TimeLimit() float64 { return e.timeLimit }

// TypingStarted reports whether the current word's timer is running.
func (e *Engine) TypingStarted() bool { return e.typingStarted }

// Turn returns the 1-based turn counter.
func (e *Engine) Turn() int { return e.turn }

// Combo returns the current combo count.
func (e *Engine) Combo() int { return e.combo }

// WordsCompleted returns the number of resolved words, failures included.
func (e *Engine) WordsCompleted() int { return e.wordsCompleted }

// EnemyHP returns the enemy's remaining HP as mirrored by the engine.
func (e *Engine) EnemyHP() int { return e.enemyHP }

// EnemyMaxHP returns the enemy's full HP.
func (e *Engine) EnemyMaxHP() int { return e.enemyMaxHP }

// Enemy returns the engine's view of the opposing enemy.
func (e *Engine) Enemy() EnemyInfo { return e.enemy }

// PlayerShield returns the remaining shield points.
func (e *Engine) PlayerShield() int { return e.playerShield }

// Floor returns the encounter's floor index.
func (e *Engine) Floor() int { return e.floor }

// UsesSentences reports whether targets are sentences rather than words.
func (e *Engine) UsesSentences() bool { return e.useSentences }

// Params returns the fixed difficulty parameters for this encounter.
func (e *Engine) Params() Params { return e.params }

// Performance exposes the live tracker for stats display.
func (e *Engine) Performance() *Tracker { return &e.perf }
