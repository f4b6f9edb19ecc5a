// Package session orchestrates typing encounters and tower runs. It owns the
// combat engine, the player and enemy models, theme script hooks, and the
// event journal the UI and persistence layers consume.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkhollow/wordwraith/internal/game/combat"
	"github.com/inkhollow/wordwraith/internal/game/effect"
	"github.com/inkhollow/wordwraith/internal/game/enemy"
	"github.com/inkhollow/wordwraith/internal/game/player"
	"github.com/inkhollow/wordwraith/internal/scripting"
)

// Hooks is the flavor surface the session calls at key combat beats.
// scripting.Manager satisfies it; nil disables flavor entirely.
type Hooks interface {
	EncounterStart(theme string, enemy scripting.EnemySnapshot) (string, bool)
	PlayerHit(theme string, enemy scripting.EnemySnapshot, damage int) (string, bool)
	EnemyHit(theme string, player scripting.PlayerSnapshot, damage int) (string, bool)
	Victory(theme string, enemy scripting.EnemySnapshot) (string, bool)
	Defeat(theme string, enemy scripting.EnemySnapshot) (string, bool)
}

// maxFleeChance caps class flee bonuses so escape never becomes certain.
const maxFleeChance = 0.9

// Screen shake intensities for decorated batches.
const (
	shakeWordFailed = 0.25
	shakeCritical   = 0.4
	shakePlayerHit  = 0.6
	shakeDefeat     = 1.0
)

// Status effect rules the session applies on top of raw combat: the first
// hit from an elite poisons, beating a boss grants regen for the floors
// ahead, and a successful flee leaves the player hasted for the next fight.
const (
	elitePoisonMagnitude = 2
	elitePoisonTurns     = 3
	bossRegenMagnitude   = 2
	bossRegenTurns       = 5
	fleeHasteMagnitude   = 0.2
	fleeHasteTurns       = 2
)

// Config assembles one encounter.
type Config struct {
	// Player must come from player.New so its effect set is initialised.
	Player *player.Player
	Enemy  *enemy.Enemy
	Floor  int
	Words  combat.WordSource
	Rand   combat.Source
	// FleeChance overrides the base flee chance when > 0; the class bonus
	// applies on top either way.
	FleeChance float64
	// Hooks is optional; nil disables theme flavor.
	Hooks Hooks
	// Logger is optional; nil uses a no-op logger.
	Logger *zap.Logger
}

// Encounter drives a single fight from first keystroke to terminal phase.
// It decorates every engine batch with sounds, screen shake, script flavor,
// and status effect ticks before handing it to the UI. Not safe for
// concurrent use; the UI loop owns it.
type Encounter struct {
	// ID identifies the encounter in reports and logs.
	ID uuid.UUID

	engine    *combat.Engine
	enemy     *enemy.Enemy
	player    *player.Player
	hooks     Hooks
	logger    *zap.Logger
	started   time.Time
	journal   []combat.Event
	rewarded  bool
	envenomed bool
}

// New builds an encounter and its combat engine.
//
// Precondition: Player and Enemy must be non-nil; Words and Rand must satisfy
// the combat package's contracts.
// Postcondition: the engine is in its opening player turn; Start has not run.
func New(cfg Config) (*Encounter, error) {
	if cfg.Player == nil {
		return nil, errors.New("encounter requires a player")
	}
	if cfg.Enemy == nil {
		return nil, errors.New("encounter requires an enemy")
	}

	base := cfg.FleeChance
	if base <= 0 {
		base = combat.DefaultFleeChance
	}
	fleeChance := base + cfg.Player.Class.FleeBonus
	if fleeChance > maxFleeChance {
		fleeChance = maxFleeChance
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	eng, err := combat.New(combat.Config{
		Enemy:      cfg.Enemy.Info(),
		Floor:      cfg.Floor,
		Words:      cfg.Words,
		Rand:       cfg.Rand,
		Shield:     cfg.Player.Shield,
		FleeChance: fleeChance,
		TimeScale:  cfg.Player.Effects.TimeScale(),
	})
	if err != nil {
		return nil, fmt.Errorf("building combat engine: %w", err)
	}

	id := uuid.New()
	return &Encounter{
		ID:      id,
		engine:  eng,
		enemy:   cfg.Enemy,
		player:  cfg.Player,
		hooks:   cfg.Hooks,
		logger:  logger.With(zap.String("encounter", id.String())),
		started: time.Now(),
	}, nil
}

// Start emits the opening batch: the enemy's battle cry and any
// encounter-start flavor from the theme script. Call it once before the
// first input is delivered.
func (e *Encounter) Start() []combat.Event {
	var batch []combat.Event
	if e.enemy.BattleCry != "" {
		batch = append(batch, combat.Message{Text: fmt.Sprintf("%s: %q", e.enemy.Name, e.enemy.BattleCry)})
	}
	if e.hooks != nil {
		if msg, ok := e.hooks.EncounterStart(e.enemy.TypingTheme, e.enemySnapshot()); ok {
			batch = append(batch, combat.Message{Text: msg})
		}
	}
	e.record("start", batch)
	return batch
}

// HandleKey forwards one printable keystroke.
func (e *Encounter) HandleKey(r rune) []combat.Event {
	return e.process("key", e.engine.OnChar(r))
}

// HandleBackspace removes the most recent keystroke.
func (e *Encounter) HandleBackspace() []combat.Event {
	return e.process("backspace", e.engine.OnBackspace())
}

// Tick advances the word timer by delta seconds.
func (e *Encounter) Tick(delta float64) []combat.Event {
	return e.process("tick", e.engine.Update(delta))
}

// Flee attempts to escape the encounter.
func (e *Encounter) Flee() []combat.Event {
	return e.process("flee", e.engine.TryFlee())
}

// EnemyAct executes the pending enemy turn against the player and ticks
// status effects once the turn ends.
func (e *Encounter) EnemyAct() []combat.Event {
	return e.process("enemy", e.engine.ExecuteEnemyTurn(e.player))
}

// Finished reports whether the encounter reached a terminal phase.
func (e *Encounter) Finished() bool {
	return e.engine.Finished()
}

// Engine exposes the live engine for view-layer reads (typed input, timers,
// correctness trace). Callers must not invoke its mutators directly.
func (e *Encounter) Engine() *combat.Engine { return e.engine }

// Player returns the player model bound to this encounter.
func (e *Encounter) Player() *player.Player { return e.player }

// Enemy returns the enemy model bound to this encounter.
func (e *Encounter) Enemy() *enemy.Enemy { return e.enemy }

// Floor returns the tower floor the encounter is fought on.
func (e *Encounter) Floor() int { return e.engine.Floor() }

// Journal returns a copy of every decorated event emitted so far.
func (e *Encounter) Journal() []combat.Event {
	out := make([]combat.Event, len(e.journal))
	copy(out, e.journal)
	return out
}

// Snapshot captures the state the game.* script module exposes.
func (e *Encounter) Snapshot() scripting.GameSnapshot {
	return scripting.GameSnapshot{
		PlayerName:   e.player.Name,
		PlayerHP:     e.player.HP,
		PlayerMaxHP:  e.player.MaxHP,
		PlayerShield: e.engine.PlayerShield(),
		EnemyName:    e.enemy.Name,
		EnemyHP:      e.engine.EnemyHP(),
		EnemyMaxHP:   e.engine.EnemyMaxHP(),
		Floor:        e.engine.Floor(),
		Turn:         e.engine.Turn(),
		Combo:        e.engine.Combo(),
	}
}

// process decorates an engine batch, applies session side effects, journals
// the result, and keeps the enemy model's HP in step with the engine.
func (e *Encounter) process(op string, batch []combat.Event) []combat.Event {
	if len(batch) == 0 {
		return nil
	}

	out := make([]combat.Event, 0, len(batch)*2)
	for _, ev := range batch {
		switch v := ev.(type) {
		case combat.PhaseChanged:
			out = append(out, e.terminalFlavor(v)...)
			out = append(out, v)
		case combat.TurnEnded:
			out = append(out, v)
			out = append(out, e.tickEffects()...)
		default:
			out = append(out, ev)
			out = append(out, e.decorate(ev)...)
		}
	}

	e.enemy.CurrentHP = e.engine.EnemyHP()
	e.record(op, out)
	return out
}

// decorate returns the sound, shake, and flavor events that follow ev.
func (e *Encounter) decorate(ev combat.Event) []combat.Event {
	switch v := ev.(type) {
	case combat.CharTyped:
		if v.Correct {
			return []combat.Event{combat.PlaySound{Effect: combat.SoundKeyCorrect}}
		}
		return []combat.Event{combat.PlaySound{Effect: combat.SoundKeyWrong}}
	case combat.WordCompleted:
		return []combat.Event{combat.PlaySound{Effect: combat.SoundWordComplete}}
	case combat.WordFailed:
		return []combat.Event{
			combat.PlaySound{Effect: combat.SoundWordFailed},
			combat.ScreenShake{Intensity: shakeWordFailed},
		}
	case combat.DamageDealt:
		extras := []combat.Event{combat.PlaySound{Effect: combat.SoundEnemyHit}}
		if v.Critical {
			extras = append(extras, combat.ScreenShake{Intensity: shakeCritical})
		}
		if e.hooks != nil {
			if msg, ok := e.hooks.PlayerHit(e.enemy.TypingTheme, e.enemySnapshot(), v.Amount); ok {
				extras = append(extras, combat.Message{Text: msg})
			}
		}
		return extras
	case combat.DamageTaken:
		extras := []combat.Event{
			combat.PlaySound{Effect: combat.SoundPlayerHit},
			combat.ScreenShake{Intensity: shakePlayerHit},
		}
		if e.enemy.Tier == enemy.TierElite && !e.envenomed && v.Amount > 0 && e.player.Alive() {
			e.envenomed = true
			err := e.player.Effects.Apply(effect.Effect{
				Kind:      effect.Poison,
				Magnitude: elitePoisonMagnitude,
				Turns:     elitePoisonTurns,
			})
			if err == nil {
				extras = append(extras, combat.Message{Text: "Elite venom seeps into the wound."})
			}
		}
		if e.hooks != nil {
			if msg, ok := e.hooks.EnemyHit(e.enemy.TypingTheme, e.playerSnapshot(), v.Amount); ok {
				extras = append(extras, combat.Message{Text: msg})
			}
		}
		return extras
	case combat.ComboIncreased:
		return []combat.Event{combat.PlaySound{Effect: combat.SoundComboUp}}
	case combat.ComboLost:
		return []combat.Event{combat.PlaySound{Effect: combat.SoundComboLost}}
	case combat.EnemyDefeated:
		return []combat.Event{combat.PlaySound{Effect: combat.SoundVictory}}
	case combat.PlayerDefeated:
		return []combat.Event{
			combat.PlaySound{Effect: combat.SoundDefeat},
			combat.ScreenShake{Intensity: shakeDefeat},
		}
	default:
		return nil
	}
}

// terminalFlavor emits the messages and side effects that precede a terminal
// phase marker. Rewards are applied exactly once per encounter.
func (e *Encounter) terminalFlavor(pc combat.PhaseChanged) []combat.Event {
	if !pc.To.Terminal() || e.rewarded {
		return nil
	}

	var out []combat.Event
	switch pc.To {
	case combat.PhaseVictory:
		e.rewarded = true
		if e.enemy.DefeatMessage != "" {
			out = append(out, combat.Message{Text: fmt.Sprintf("%s: %q", e.enemy.Name, e.enemy.DefeatMessage)})
		}
		if e.hooks != nil {
			if msg, ok := e.hooks.Victory(e.enemy.TypingTheme, e.enemySnapshot()); ok {
				out = append(out, combat.Message{Text: msg})
			}
		}
		out = append(out, e.applyRewards()...)
		if e.enemy.IsBoss() {
			err := e.player.Effects.Apply(effect.Effect{
				Kind:      effect.Regen,
				Magnitude: bossRegenMagnitude,
				Turns:     bossRegenTurns,
			})
			if err == nil {
				out = append(out, combat.Message{Text: "The tower knits your wounds in tribute."})
			}
		}
	case combat.PhaseDefeat:
		e.rewarded = true
		if e.hooks != nil {
			if msg, ok := e.hooks.Defeat(e.enemy.TypingTheme, e.enemySnapshot()); ok {
				out = append(out, combat.Message{Text: msg})
			}
		}
	case combat.PhaseFled:
		e.rewarded = true
		err := e.player.Effects.Apply(effect.Effect{
			Kind:      effect.Haste,
			Magnitude: fleeHasteMagnitude,
			Turns:     fleeHasteTurns,
		})
		if err == nil {
			out = append(out, combat.Message{Text: "Adrenaline sharpens your fingers."})
		}
	}
	return out
}

// applyRewards grants victory XP and gold and reports any level-ups.
func (e *Encounter) applyRewards() []combat.Event {
	res, ok := e.engine.Result()
	if !ok {
		return nil
	}

	out := []combat.Event{
		combat.Message{Text: fmt.Sprintf("You gain %d XP and %d gold.", res.XP, res.Gold)},
	}
	e.player.AddGold(res.Gold)
	if levels := e.player.GainXP(res.XP); levels > 0 {
		out = append(out, combat.Message{Text: fmt.Sprintf("You reach level %d!", e.player.Level)})
	}
	return out
}

// tickEffects advances the player's status effects at the turn boundary.
// Poison never lands the killing blow; it stops at 1 HP.
func (e *Encounter) tickEffects() []combat.Event {
	delta := e.player.Effects.TickTurn()

	var out []combat.Event
	if delta.HP < 0 {
		dmg := -delta.HP
		if dmg >= e.player.HP {
			dmg = e.player.HP - 1
		}
		if dmg > 0 {
			e.player.TakeDamage(dmg)
			out = append(out, combat.Message{Text: fmt.Sprintf("Poison sears you for %d.", dmg)})
		}
	} else if delta.HP > 0 {
		if healed := e.player.Heal(delta.HP); healed > 0 {
			out = append(out, combat.Message{Text: fmt.Sprintf("You knit back %d health.", healed)})
		}
	}
	for _, k := range delta.Expired {
		out = append(out, combat.Message{Text: fmt.Sprintf("The %s effect wears off.", k)})
	}
	return out
}

func (e *Encounter) enemySnapshot() scripting.EnemySnapshot {
	return scripting.EnemySnapshot{
		Name:  e.enemy.Name,
		HP:    e.engine.EnemyHP(),
		MaxHP: e.engine.EnemyMaxHP(),
		Tier:  string(e.enemy.Tier),
		Floor: e.engine.Floor(),
	}
}

func (e *Encounter) playerSnapshot() scripting.PlayerSnapshot {
	return scripting.PlayerSnapshot{
		Name:   e.player.Name,
		HP:     e.player.HP,
		MaxHP:  e.player.MaxHP,
		Shield: e.engine.PlayerShield(),
		Combo:  e.engine.Combo(),
	}
}

// record journals a batch and logs it at debug level.
func (e *Encounter) record(op string, batch []combat.Event) {
	if len(batch) == 0 {
		return
	}
	e.journal = append(e.journal, batch...)
	e.logger.Debug("combat events",
		zap.String("op", op),
		zap.Int("count", len(batch)),
		zap.String("phase", e.engine.Phase().String()),
		zap.Int("enemy_hp", e.engine.EnemyHP()),
		zap.Int("player_hp", e.player.HP),
	)
}

