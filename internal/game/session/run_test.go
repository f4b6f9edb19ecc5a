package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkhollow/wordwraith/internal/content"
	"github.com/inkhollow/wordwraith/internal/game/effect"
	"github.com/inkhollow/wordwraith/internal/game/enemy"
	"github.com/inkhollow/wordwraith/internal/game/session"
	"github.com/inkhollow/wordwraith/internal/scripting"
)

func runTemplates() []*enemy.Template {
	return []*enemy.Template{
		{
			ID:             "glyph_leech",
			Name:           "Glyph Leech",
			BaseHP:         8,
			BaseAttack:     6,
			XPReward:       20,
			GoldReward:     8,
			TypingTheme:    "shadows",
			AttackMessages: []string{"drains at you"},
			BattleCry:      "Your words are mine now.",
		},
		{
			ID:         "the_unspeller",
			Name:       "The Unspeller",
			BaseHP:     16,
			BaseAttack: 8,
			XPReward:   100,
			GoldReward: 40,
			Tier:       enemy.TierBoss,
		},
	}
}

func newTestRun(t *testing.T, src *fixedSource, cfg session.RunConfig) *session.Run {
	t.Helper()
	if cfg.Player == nil {
		cfg.Player = newTestPlayer(t)
	}
	if cfg.Enemies == nil {
		reg, err := enemy.NewRegistry(runTemplates())
		require.NoError(t, err)
		cfg.Enemies = reg
	}
	if cfg.Words == nil {
		db, err := content.NewDatabase(src)
		require.NoError(t, err)
		cfg.Words = db
	}
	if cfg.Rand == nil {
		cfg.Rand = src
	}
	run, err := session.NewRun(cfg)
	require.NoError(t, err)
	return run
}

// winCurrentFight types the live target perfectly, which one-shots the small
// test templates, and folds the encounter back into the run.
func winCurrentFight(t *testing.T, run *session.Run) session.Report {
	t.Helper()
	enc, err := run.NextEncounter()
	require.NoError(t, err)
	typeWord(enc, enc.Engine().CurrentWord())
	require.True(t, enc.Finished(), "one perfect word must fell a test template")
	report, err := run.CompleteEncounter()
	require.NoError(t, err)
	require.True(t, report.Victory)
	return report
}

func TestNewRun_Validation(t *testing.T) {
	src := &fixedSource{float: 0.5}
	p := newTestPlayer(t)
	reg, err := enemy.NewRegistry(runTemplates())
	require.NoError(t, err)
	db, err := content.NewDatabase(src)
	require.NoError(t, err)

	_, err = session.NewRun(session.RunConfig{Enemies: reg, Words: db, Rand: src})
	assert.ErrorContains(t, err, "requires a player")

	_, err = session.NewRun(session.RunConfig{Player: p, Words: db, Rand: src})
	assert.ErrorContains(t, err, "requires an enemy registry")

	_, err = session.NewRun(session.RunConfig{Player: p, Enemies: reg, Rand: src})
	assert.ErrorContains(t, err, "requires a word database")

	_, err = session.NewRun(session.RunConfig{Player: p, Enemies: reg, Words: db})
	assert.ErrorContains(t, err, "requires a randomness source")

	_, err = session.NewRun(session.RunConfig{Player: p, Enemies: reg, Words: db, Rand: src, StartFloor: 12})
	assert.ErrorContains(t, err, "start floor 12 is above the tower top 10")
}

func TestNewRun_Defaults(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.5}, session.RunConfig{})
	assert.Equal(t, 1, run.Floor())
	assert.Equal(t, session.DefaultFloors, run.Top())
	assert.Nil(t, run.Current())
	assert.False(t, run.Finished())
}

func TestRun_NextEncounter_SpawnsForFloor(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.5}, session.RunConfig{})

	enc, err := run.NextEncounter()
	require.NoError(t, err)
	assert.Same(t, enc, run.Current())
	assert.Equal(t, "Glyph Leech", enc.Enemy().Name)
	assert.Equal(t, 8, enc.Enemy().MaxHP)
	assert.Equal(t, 1, enc.Floor())
	assert.Equal(t, "ink", enc.Engine().CurrentWord())

	_, err = run.NextEncounter()
	assert.ErrorContains(t, err, "already in progress")
}

func TestRun_BossFloor_DrawsFromBossPool(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.5}, session.RunConfig{StartFloor: 5})

	enc, err := run.NextEncounter()
	require.NoError(t, err)
	assert.Equal(t, "The Unspeller", enc.Enemy().Name)
	assert.True(t, enc.Enemy().IsBoss())
	assert.True(t, enc.Engine().UsesSentences(), "boss fights are typed in sentences")
}

func TestRun_ThemedEnemy_DrawsThemedWords(t *testing.T) {
	reg, err := enemy.NewRegistry([]*enemy.Template{{
		ID:          "cog_golem",
		Name:        "Cog Golem",
		BaseHP:      8,
		BaseAttack:  6,
		XPReward:    15,
		GoldReward:  5,
		TypingTheme: "machinery",
	}})
	require.NoError(t, err)

	// A low roll lands inside the theme chance, so the draw comes from the
	// machinery pool instead of the tier list.
	run := newTestRun(t, &fixedSource{float: 0.0}, session.RunConfig{Enemies: reg})
	enc, err := run.NextEncounter()
	require.NoError(t, err)
	assert.Equal(t, "gear", enc.Engine().CurrentWord())
}

func TestRun_Victory_AdvancesFloorAndTotals(t *testing.T) {
	src := &fixedSource{float: 0.5}
	run := newTestRun(t, src, session.RunConfig{})
	p := run.Player()

	report := winCurrentFight(t, run)
	assert.Equal(t, 1, report.Floor)
	assert.Equal(t, 20, report.XPEarned)
	assert.Equal(t, 8, report.GoldEarned)

	assert.Equal(t, 2, run.Floor())
	assert.Nil(t, run.Current())
	assert.Equal(t, 20, p.XP)
	assert.Equal(t, 8, p.Gold)

	totals := run.Totals()
	assert.Equal(t, 20, totals.XP)
	assert.Equal(t, 8, totals.Gold)
	assert.Equal(t, 1, totals.FloorsCleared)
	assert.Equal(t, 1, totals.WordsCompleted)
	assert.Equal(t, 1, totals.PerfectWords)
	assert.Equal(t, 1, totals.BestCombo)
	assert.Len(t, run.Reports(), 1)
}

func TestRun_Fled_RetriesTheFloor(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.0}, session.RunConfig{})

	enc, err := run.NextEncounter()
	require.NoError(t, err)
	enc.Flee()
	require.True(t, enc.Finished())

	report, err := run.CompleteEncounter()
	require.NoError(t, err)
	assert.True(t, report.Fled)
	assert.False(t, report.Victory)
	assert.Equal(t, 1, run.Floor(), "fleeing keeps the player on the floor")
	assert.Zero(t, run.Totals().FloorsCleared)
	assert.True(t, run.Player().Effects.Has(effect.Haste))

	_, err = run.NextEncounter()
	assert.NoError(t, err, "the floor can be attempted again")
}

func TestRun_Defeat_FinishesRun(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.99}, session.RunConfig{})
	run.Player().HP = 5

	enc, err := run.NextEncounter()
	require.NoError(t, err)
	enc.Flee()
	enc.EnemyAct()
	require.True(t, enc.Finished())

	report, err := run.CompleteEncounter()
	require.NoError(t, err)
	assert.False(t, report.Victory)
	assert.False(t, report.Fled)

	assert.True(t, run.Finished())
	assert.False(t, run.Cleared())
	_, err = run.NextEncounter()
	assert.ErrorContains(t, err, "run is finished")
}

func TestRun_ClearingTheTopFloorEndsTheRun(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.5}, session.RunConfig{Floors: 2})

	winCurrentFight(t, run)
	assert.False(t, run.Cleared())
	winCurrentFight(t, run)

	assert.True(t, run.Cleared())
	assert.True(t, run.Finished())
	assert.Equal(t, 3, run.Floor())

	totals := run.Totals()
	assert.Equal(t, 40, totals.XP)
	assert.Equal(t, 16, totals.Gold)
	assert.Equal(t, 2, totals.FloorsCleared)
	assert.Equal(t, 2, totals.WordsCompleted)
	assert.Len(t, run.Reports(), 2)

	_, err := run.NextEncounter()
	assert.ErrorContains(t, err, "run is finished")
}

func TestRun_CompleteEncounter_Guards(t *testing.T) {
	run := newTestRun(t, &fixedSource{float: 0.5}, session.RunConfig{})

	_, err := run.CompleteEncounter()
	assert.ErrorContains(t, err, "no encounter in progress")

	_, err = run.NextEncounter()
	require.NoError(t, err)
	_, err = run.CompleteEncounter()
	assert.ErrorContains(t, err, "encounter is not finished")
}

func TestRun_ScriptHooks_FollowTheEncounter(t *testing.T) {
	src := &fixedSource{float: 0.5}
	mgr := scripting.NewManager(src, zap.NewNop())
	defer mgr.Close()

	root := t.TempDir()
	themeDir := filepath.Join(root, "themes")
	require.NoError(t, os.MkdirAll(themeDir, 0o755))
	script := `function on_encounter_start(enemy)
    return string.format("floor %d: the %s coils", game.floor(), enemy.name)
end`
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "shadows.lua"), []byte(script), 0o644))
	require.NoError(t, mgr.LoadThemes(root, 0))

	run := newTestRun(t, src, session.RunConfig{Scripts: mgr})
	enc, err := run.NextEncounter()
	require.NoError(t, err)

	batch := enc.Start()
	assert.Contains(t, messages(batch), "floor 1: the Glyph Leech coils")
}
