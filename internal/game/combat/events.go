// Package combat implements the real-time typing-combat engine for Wordwraith.
//
// The engine is a synchronous state machine driven entirely by its caller:
// the host forwards keystrokes, backspaces, and clock deltas, and every
// mutator returns the batch of events that call produced. The engine owns no
// clock, performs no I/O, and never renders; wall-clock time arrives as
// delta seconds and randomness through an injected Source, so identical
// inputs always produce identical outputs.
package combat

// Phase identifies one state of the combat state machine.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlayerTurn
	PhaseEnemyTurn
	PhaseVictory
	PhaseDefeat
	PhaseFled
)

// String returns the phase name used in logs and saved reports.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether p admits no further transitions.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseFled
}

// FailReason explains why a word resolved as failed.
type FailReason int

const (
	// FailMistyped means the word reached full length without matching.
	FailMistyped FailReason = iota
	// FailTimeout means the word timer ran out after typing had started.
	FailTimeout
	// FailInterrupted means the enemy interrupt roll landed mid-word.
	FailInterrupted
)

func (r FailReason) String() string {
	switch r {
	case FailMistyped:
		return "mistyped"
	case FailTimeout:
		return "timeout"
	case FailInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// StreakKind identifies which running streak a StreakBonus rewards.
type StreakKind int

const (
	StreakPerfectWords StreakKind = iota
	StreakHighSpeed
	StreakNoMistakes
)

func (k StreakKind) String() string {
	switch k {
	case StreakPerfectWords:
		return "perfect_words"
	case StreakHighSpeed:
		return "high_speed"
	case StreakNoMistakes:
		return "no_mistakes"
	default:
		return "unknown"
	}
}

// Sound names an audio cue. The engine only ever attaches these as data;
// whether anything is played is entirely up to the host.
type Sound int

const (
	SoundKeyCorrect Sound = iota
	SoundKeyWrong
	SoundWordComplete
	SoundWordFailed
	SoundComboUp
	SoundComboLost
	SoundEnemyHit
	SoundPlayerHit
	SoundVictory
	SoundDefeat
)

// Event is one discrete combat outcome. The concrete types below form a
// closed set; hosts type-switch over them to drive rendering, audio cues,
// and persistence. Events are immutable values and the engine never reads
// back what it has emitted.
type Event interface {
	combatEvent()
}

// CharTyped reports the evaluation of a single keystroke.
type CharTyped struct {
	// Correct is true when the keystroke matched the target position.
	Correct bool
	// ComboMaintained is true when an active combo survived the keystroke.
	// UI continuity cue only; it never affects scoring.
	ComboMaintained bool
}

// WordCompleted reports a successfully typed word and its scoring inputs.
type WordCompleted struct {
	Word     string
	WPM      float64
	Accuracy float64
	Perfect  bool
}

// WordFailed reports a word resolved as failed, with what was typed so far.
type WordFailed struct {
	Word   string
	Typed  string
	Reason FailReason
}

// DamageDealt reports damage applied to the enemy.
type DamageDealt struct {
	Amount int
	// Critical marks perfect-word hits for emphasis in the UI.
	Critical bool
	// Overkill is how far the hit exceeded the enemy's remaining HP.
	Overkill int
}

// DamageTaken reports damage applied to the player after shield absorption.
type DamageTaken struct {
	Amount  int
	Blocked int
}

// EnemyDefeated carries the rewards for winning the encounter.
type EnemyDefeated struct {
	XP   int
	Gold int
}

// PlayerDefeated marks the player's HP reaching zero.
type PlayerDefeated struct{}

// ComboIncreased reports the combo counter after a successful word and the
// damage attributable to the combo multiplier step.
type ComboIncreased struct {
	NewCombo    int
	BonusDamage int
}

// ComboLost reports a broken combo and its size before the failure.
type ComboLost struct {
	WasCombo int
}

// StreakBonus announces a running streak. The bonus value is informational;
// it is not folded into the damage total.
type StreakBonus struct {
	Kind  StreakKind
	Count int
	Bonus int
}

// PerfectWordBonus reports the perfect-word multiplier being applied.
type PerfectWordBonus struct {
	DamageMult float64
}

// SpeedBonus reports the speed multiplier earned by typing above the
// difficulty's WPM threshold.
type SpeedBonus struct {
	WPM        float64
	DamageMult float64
}

// AccuracyPenalty reports the damage reduction for typing below the
// difficulty's accuracy threshold.
type AccuracyPenalty struct {
	Accuracy        float64
	DamageReduction float64
}

// PhaseChanged marks every state machine transition. Hosts never need to
// poll engine state; watching these is sufficient.
type PhaseChanged struct {
	From Phase
	To   Phase
}

// TurnEnded marks the end of a full player/enemy turn cycle.
type TurnEnded struct {
	Turn int
}

// Message is free-form narrative text for the battle log.
type Message struct {
	Text string
}

// PlaySound asks the host to play an audio cue.
type PlaySound struct {
	Effect Sound
}

// ScreenShake asks the host to shake the view, 0..1 intensity.
type ScreenShake struct {
	Intensity float64
}

func (CharTyped) combatEvent()        {}
func (WordCompleted) combatEvent()    {}
func (WordFailed) combatEvent()       {}
func (DamageDealt) combatEvent()      {}
func (DamageTaken) combatEvent()      {}
func (EnemyDefeated) combatEvent()    {}
func (PlayerDefeated) combatEvent()   {}
func (ComboIncreased) combatEvent()   {}
func (ComboLost) combatEvent()        {}
func (StreakBonus) combatEvent()      {}
func (PerfectWordBonus) combatEvent() {}
func (SpeedBonus) combatEvent()       {}
func (AccuracyPenalty) combatEvent()  {}
func (PhaseChanged) combatEvent()     {}
func (TurnEnded) combatEvent()        {}
func (Message) combatEvent()          {}
func (PlaySound) combatEvent()        {}
func (ScreenShake) combatEvent()      {}
