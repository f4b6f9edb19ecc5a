package session_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhollow/wordwraith/internal/game/combat"
	"github.com/inkhollow/wordwraith/internal/game/effect"
	"github.com/inkhollow/wordwraith/internal/game/enemy"
	"github.com/inkhollow/wordwraith/internal/game/player"
	"github.com/inkhollow/wordwraith/internal/game/session"
	"github.com/inkhollow/wordwraith/internal/scripting"
)

// scriptedWords serves targets from a fixed queue, repeating the last target
// once the queue drains.
type scriptedWords struct {
	targets []string
	next    int
}

func newScriptedWords(targets ...string) *scriptedWords {
	return &scriptedWords{targets: targets}
}

func (s *scriptedWords) take() string {
	if s.next >= len(s.targets) {
		return s.targets[len(s.targets)-1]
	}
	w := s.targets[s.next]
	s.next++
	return w
}

func (s *scriptedWords) Word(int) string     { return s.take() }
func (s *scriptedWords) Sentence(int) string { return s.take() }

// fixedSource returns fixed values for both draw kinds.
type fixedSource struct {
	intn  int
	float float64
}

func (f *fixedSource) Intn(n int) int {
	if f.intn >= n {
		return n - 1
	}
	return f.intn
}

func (f *fixedSource) Float64() float64 { return f.float }

// stubHooks returns canned flavor lines and records the themes it saw.
type stubHooks struct {
	themes []string
}

func (h *stubHooks) EncounterStart(theme string, _ scripting.EnemySnapshot) (string, bool) {
	h.themes = append(h.themes, theme)
	return "the dark leans in", true
}

func (h *stubHooks) PlayerHit(theme string, e scripting.EnemySnapshot, damage int) (string, bool) {
	h.themes = append(h.themes, theme)
	return fmt.Sprintf("%d bites into %s", damage, e.Name), true
}

func (h *stubHooks) EnemyHit(theme string, p scripting.PlayerSnapshot, _ int) (string, bool) {
	h.themes = append(h.themes, theme)
	return p.Name + " staggers", true
}

func (h *stubHooks) Victory(theme string, _ scripting.EnemySnapshot) (string, bool) {
	h.themes = append(h.themes, theme)
	return "the stacks fall silent", true
}

func (h *stubHooks) Defeat(theme string, _ scripting.EnemySnapshot) (string, bool) {
	h.themes = append(h.themes, theme)
	return "the tower feeds", true
}

func testClass() player.Class {
	return player.Class{
		ID:          "scribe",
		Name:        "Scribe",
		Description: "Test scribe.",
		BaseHP:      100,
	}
}

func newTestPlayer(t *testing.T) *player.Player {
	t.Helper()
	p, err := player.New("Isolde", testClass())
	require.NoError(t, err)
	return p
}

func testEnemy(hp int, tier enemy.Tier) *enemy.Enemy {
	return &enemy.Enemy{
		TemplateID:     "glyph_leech",
		Name:           "Glyph Leech",
		MaxHP:          hp,
		CurrentHP:      hp,
		AttackPower:    8,
		XPReward:       25,
		GoldReward:     10,
		Floor:          1,
		Tier:           tier,
		TypingTheme:    "shadows",
		AttackMessages: []string{"drains at you"},
		BattleCry:      "Your words are mine now.",
		DefeatMessage:  "The ink scatters.",
	}
}

func newTestEncounter(t *testing.T, p *player.Player, foe *enemy.Enemy, words combat.WordSource, src combat.Source, hooks session.Hooks) *session.Encounter {
	t.Helper()
	enc, err := session.New(session.Config{
		Player: p,
		Enemy:  foe,
		Floor:  1,
		Words:  words,
		Rand:   src,
		Hooks:  hooks,
	})
	require.NoError(t, err)
	return enc
}

// typeWord feeds every rune of word and returns all emitted events in order.
func typeWord(enc *session.Encounter, word string) []combat.Event {
	var events []combat.Event
	for _, r := range word {
		events = append(events, enc.HandleKey(r)...)
	}
	return events
}

func messages(events []combat.Event) []string {
	var out []string
	for _, ev := range events {
		if m, ok := ev.(combat.Message); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func eventTypes(events []combat.Event) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = fmt.Sprintf("%T", ev)
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	p := newTestPlayer(t)
	words := newScriptedWords("cat")
	src := &fixedSource{float: 0.99}

	_, err := session.New(session.Config{Enemy: testEnemy(30, enemy.TierNormal), Words: words, Rand: src})
	assert.ErrorContains(t, err, "requires a player")

	_, err = session.New(session.Config{Player: p, Words: words, Rand: src})
	assert.ErrorContains(t, err, "requires an enemy")

	_, err = session.New(session.Config{Player: p, Enemy: testEnemy(30, enemy.TierNormal), Rand: src})
	assert.ErrorContains(t, err, "building combat engine")
}

func TestEncounter_Start_EmitsBattleCryAndFlavor(t *testing.T) {
	p := newTestPlayer(t)
	hooks := &stubHooks{}
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, hooks)

	batch := enc.Start()
	require.Equal(t, []string{
		`Glyph Leech: "Your words are mine now."`,
		"the dark leans in",
	}, messages(batch))
	assert.Equal(t, []string{"shadows"}, hooks.themes)
	assert.Len(t, enc.Journal(), 2)
}

func TestEncounter_Start_QuietWithoutCryOrHooks(t *testing.T) {
	p := newTestPlayer(t)
	foe := testEnemy(30, enemy.TierNormal)
	foe.BattleCry = ""
	enc := newTestEncounter(t, p, foe, newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	assert.Empty(t, enc.Start())
	assert.Empty(t, enc.Journal())
}

func TestEncounter_HandleKey_DecoratesKeystrokes(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	batch := enc.HandleKey('c')
	require.Len(t, batch, 2)
	assert.Equal(t, combat.CharTyped{Correct: true}, batch[0])
	assert.Equal(t, combat.PlaySound{Effect: combat.SoundKeyCorrect}, batch[1])

	batch = enc.HandleKey('x')
	require.Len(t, batch, 2)
	assert.False(t, batch[0].(combat.CharTyped).Correct)
	assert.Equal(t, combat.PlaySound{Effect: combat.SoundKeyWrong}, batch[1])

	batch = enc.HandleBackspace()
	assert.Empty(t, batch)
}

func TestEncounter_WordCompletion_DecoratedBatchOrder(t *testing.T) {
	p := newTestPlayer(t)
	hooks := &stubHooks{}
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat", "dog"), &fixedSource{float: 0.99}, hooks)

	events := typeWord(enc, "cat")
	// The resolving keystroke produces the full decorated batch.
	final := events[len(events)-12:]
	assert.Equal(t, []string{
		"combat.CharTyped",
		"combat.PlaySound",
		"combat.WordCompleted",
		"combat.PlaySound",
		"combat.DamageDealt",
		"combat.PlaySound",
		"combat.ScreenShake",
		"combat.Message",
		"combat.ComboIncreased",
		"combat.PlaySound",
		"combat.PerfectWordBonus",
		"combat.PhaseChanged",
	}, eventTypes(final))

	assert.Contains(t, messages(events), "10 bites into Glyph Leech")
	assert.Equal(t, 20, enc.Enemy().CurrentHP, "enemy model must mirror engine HP")

	last := events[len(events)-1].(combat.PhaseChanged)
	assert.Equal(t, combat.PhaseEnemyTurn, last.To)
}

func TestEncounter_Victory_RewardsAppliedOnce(t *testing.T) {
	p := newTestPlayer(t)
	hooks := &stubHooks{}
	enc := newTestEncounter(t, p, testEnemy(10, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, hooks)

	events := typeWord(enc, "cat")
	msgs := messages(events)
	assert.Contains(t, msgs, `Glyph Leech: "The ink scatters."`)
	assert.Contains(t, msgs, "the stacks fall silent")
	assert.Contains(t, msgs, "You gain 25 XP and 10 gold.")

	_, isPhase := events[len(events)-1].(combat.PhaseChanged)
	assert.True(t, isPhase, "terminal flavor must precede the phase marker")

	assert.Equal(t, 25, p.XP)
	assert.Equal(t, 10, p.Gold)
	assert.Equal(t, 0, enc.Enemy().CurrentHP)
	assert.True(t, enc.Finished())

	// Terminal phases absorb further input without repeating rewards.
	assert.Empty(t, enc.Tick(1.0))
	assert.Equal(t, 25, p.XP)

	report, ok := enc.Report()
	require.True(t, ok)
	assert.True(t, report.Victory)
	assert.False(t, report.Fled)
	assert.Equal(t, 25, report.XPEarned)
	assert.Equal(t, 10, report.GoldEarned)
	assert.Equal(t, "Isolde", report.PlayerName)
	assert.Equal(t, "Glyph Leech", report.EnemyName)
}

func TestEncounter_Victory_AnnouncesLevelUp(t *testing.T) {
	p := newTestPlayer(t)
	p.XP = 90
	enc := newTestEncounter(t, p, testEnemy(10, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	events := typeWord(enc, "cat")
	assert.Contains(t, messages(events), "You reach level 2!")
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 15, p.XP)
	assert.Equal(t, 110, p.MaxHP)
}

func TestEncounter_BossVictory_GrantsRegen(t *testing.T) {
	p := newTestPlayer(t)
	foe := testEnemy(10, enemy.TierBoss)
	enc := newTestEncounter(t, p, foe, newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	events := typeWord(enc, "cat")
	assert.Contains(t, messages(events), "The tower knits your wounds in tribute.")
	assert.True(t, p.Effects.Has(effect.Regen))
}

func TestEncounter_EnemyAct_DecoratesAndTicksEffects(t *testing.T) {
	p := newTestPlayer(t)
	hooks := &stubHooks{}
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat", "dog"), &fixedSource{float: 0.99}, hooks)

	// A failed flee hands the turn to the enemy without resolving a word.
	fleeBatch := enc.Flee()
	assert.Contains(t, messages(fleeBatch), "Failed to flee!")

	events := enc.EnemyAct()
	assert.Equal(t, []string{
		"combat.DamageTaken",
		"combat.PlaySound",
		"combat.ScreenShake",
		"combat.Message",
		"combat.Message",
		"combat.TurnEnded",
		"combat.PhaseChanged",
	}, eventTypes(events))

	msgs := messages(events)
	assert.Equal(t, "Isolde staggers", msgs[0])
	assert.Equal(t, "Glyph Leech drains at you for 8 damage!", msgs[1])
	assert.Equal(t, 92, p.HP)
}

func TestEncounter_EliteVenom_PoisonsOnFirstHitOnly(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierElite), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	enc.Flee()
	first := enc.EnemyAct()
	assert.Contains(t, messages(first), "Elite venom seeps into the wound.")
	assert.Contains(t, messages(first), "Poison sears you for 2.")
	assert.True(t, p.Effects.Has(effect.Poison))
	assert.Equal(t, 90, p.HP, "8 from the bite, 2 from the venom")

	enc.Flee()
	second := enc.EnemyAct()
	assert.NotContains(t, messages(second), "Elite venom seeps into the wound.")
	assert.Contains(t, messages(second), "Poison sears you for 2.")
	assert.Equal(t, 80, p.HP)
}

func TestEncounter_EffectExpiry_Announced(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)
	require.NoError(t, p.Effects.Apply(effect.Effect{Kind: effect.Poison, Magnitude: 2, Turns: 1}))

	enc.Flee()
	events := enc.EnemyAct()
	msgs := messages(events)
	assert.Contains(t, msgs, "Poison sears you for 2.")
	assert.Contains(t, msgs, "The poison effect wears off.")
	assert.False(t, p.Effects.Has(effect.Poison))

	enc.Flee()
	clean := enc.EnemyAct()
	assert.NotContains(t, messages(clean), "Poison sears you for 2.")
}

func TestEncounter_PoisonNeverKills(t *testing.T) {
	p := newTestPlayer(t)
	p.HP = 10
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)
	require.NoError(t, p.Effects.Apply(effect.Effect{Kind: effect.Poison, Magnitude: 5, Turns: 3}))

	enc.Flee()
	events := enc.EnemyAct()
	// The bite leaves 2 HP; the 5-point poison is clamped to 1.
	assert.Contains(t, messages(events), "Poison sears you for 1.")
	assert.Equal(t, 1, p.HP)
	assert.True(t, p.Alive())

	enc.Flee()
	quiet := enc.EnemyAct()
	// At 1 HP after another 8-damage bite the player is dead before the
	// turn boundary, so poison never ticks.
	assert.False(t, p.Alive())
	_, hasTurnEnd := func() (combat.TurnEnded, bool) {
		for _, ev := range quiet {
			if te, ok := ev.(combat.TurnEnded); ok {
				return te, true
			}
		}
		return combat.TurnEnded{}, false
	}()
	assert.False(t, hasTurnEnd)
}

func TestEncounter_RegenHealsAtTurnEnd(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)
	require.NoError(t, p.Effects.Apply(effect.Effect{Kind: effect.Regen, Magnitude: 3, Turns: 2}))

	enc.Flee()
	events := enc.EnemyAct()
	assert.Contains(t, messages(events), "You knit back 3 health.")
	assert.Equal(t, 95, p.HP, "8 from the bite, 3 regenerated")
}

func TestEncounter_Flee_SuccessGrantsHaste(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.0}, nil)

	events := enc.Flee()
	msgs := messages(events)
	assert.Contains(t, msgs, "You slip away from the fight.")
	assert.Contains(t, msgs, "Adrenaline sharpens your fingers.")
	assert.True(t, p.Effects.Has(effect.Haste))
	assert.InDelta(t, 1.2, p.Effects.TimeScale(), 1e-9)

	_, isPhase := events[len(events)-1].(combat.PhaseChanged)
	assert.True(t, isPhase)

	report, ok := enc.Report()
	require.True(t, ok)
	assert.True(t, report.Fled)
	assert.False(t, report.Victory)
	assert.Zero(t, report.XPEarned)
}

func TestEncounter_FleeChanceOverride(t *testing.T) {
	p := newTestPlayer(t)
	// A roll of 0.85 fails the default 0.5 chance but passes 0.9.
	enc, err := session.New(session.Config{
		Player:     p,
		Enemy:      testEnemy(30, enemy.TierNormal),
		Floor:      1,
		Words:      newScriptedWords("cat"),
		Rand:       &fixedSource{float: 0.85},
		FleeChance: 0.9,
	})
	require.NoError(t, err)

	events := enc.Flee()
	assert.Contains(t, messages(events), "You slip away from the fight.")
	assert.True(t, enc.Finished())
}

func TestEncounter_Defeat_HookFires(t *testing.T) {
	p := newTestPlayer(t)
	p.HP = 8
	hooks := &stubHooks{}
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, hooks)

	enc.Flee()
	events := enc.EnemyAct()
	msgs := messages(events)
	assert.Contains(t, msgs, "the tower feeds")
	assert.False(t, p.Alive())

	last := events[len(events)-1].(combat.PhaseChanged)
	assert.Equal(t, combat.PhaseDefeat, last.To)

	report, ok := enc.Report()
	require.True(t, ok)
	assert.False(t, report.Victory)
	assert.False(t, report.Fled)
}

func TestEncounter_Journal_ReturnsCopies(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	enc.HandleKey('c')
	first := enc.Journal()
	require.Len(t, first, 2)
	first[0] = combat.Message{Text: "tampered"}

	second := enc.Journal()
	assert.Equal(t, combat.CharTyped{Correct: true}, second[0])
}

func TestEncounter_Snapshot_TracksLiveState(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(30, enemy.TierNormal), newScriptedWords("cat", "dog"), &fixedSource{float: 0.99}, nil)

	typeWord(enc, "cat")
	snap := enc.Snapshot()
	assert.Equal(t, "Isolde", snap.PlayerName)
	assert.Equal(t, 100, snap.PlayerHP)
	assert.Equal(t, "Glyph Leech", snap.EnemyName)
	assert.Equal(t, 20, snap.EnemyHP)
	assert.Equal(t, 30, snap.EnemyMaxHP)
	assert.Equal(t, 1, snap.Floor)
	assert.Equal(t, 1, snap.Turn)
	assert.Equal(t, 1, snap.Combo)
}

func TestEncounter_NilHooks_NoFlavor(t *testing.T) {
	p := newTestPlayer(t)
	enc := newTestEncounter(t, p, testEnemy(10, enemy.TierNormal), newScriptedWords("cat"), &fixedSource{float: 0.99}, nil)

	events := typeWord(enc, "cat")
	msgs := messages(events)
	assert.NotContains(t, msgs, "the stacks fall silent")
	assert.Contains(t, msgs, "You gain 25 XP and 10 gold.")
}
