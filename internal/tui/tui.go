// Package tui renders tower runs with Bubble Tea. The model owns the run
// loop: it forwards keystrokes and clock ticks to the active encounter,
// folds the returned event batches into the battle log, paces enemy turns,
// and walks the run from floor to floor as fights resolve.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/inkhollow/wordwraith/internal/game/combat"
	"github.com/inkhollow/wordwraith/internal/game/session"
)

// DefaultTickRate is the frame interval when Config leaves it unset.
const DefaultTickRate = 50 * time.Millisecond

// enemyActDelay paces the enemy's strike so the turn handoff reads as a
// beat instead of an instant HP drop.
const enemyActDelay = 600 * time.Millisecond

// logLines is how many battle log lines the view keeps.
const logLines = 6

// shakeDecay is screen shake intensity lost per second.
const shakeDecay = 4.0

// storeTimeout bounds the background report write.
const storeTimeout = 5 * time.Second

// ReportStore persists finished encounter reports.
// *postgres.ReportRepository satisfies it; nil disables persistence.
type ReportStore interface {
	Create(ctx context.Context, rep *session.Report) error
}

// Config assembles the program.
type Config struct {
	Run *session.Run
	// Store is optional; nil plays without persistence.
	Store ReportStore
	// Logger is optional; nil uses a no-op logger. Point it at a file,
	// never the terminal the program draws on.
	Logger *zap.Logger
	// TickRate is the frame interval; 0 uses DefaultTickRate.
	TickRate time.Duration
}

type screen int

const (
	screenBattle screen = iota
	screenEncounterEnd
	screenRunEnd
)

// frameMsg carries the wall clock of one render tick.
type frameMsg time.Time

// enemyActMsg fires the paced enemy turn.
type enemyActMsg struct{}

// reportSavedMsg carries the outcome of the background report write.
type reportSavedMsg struct {
	err error
}

// Model is the Bubble Tea model for a tower run.
type Model struct {
	run    *session.Run
	store  ReportStore
	logger *zap.Logger

	enc    *session.Encounter
	report *session.Report
	screen screen

	enemyBar  progress.Model
	playerBar progress.Model

	log      []string
	shake    float64
	lastTick time.Time
	tickRate time.Duration

	width    int
	quitting bool
	err      error
}

// New builds the model and opens the run's first encounter.
//
// Precondition: cfg.Run must be non-nil and not finished.
func New(cfg Config) (Model, error) {
	if cfg.Run == nil {
		return Model{}, errors.New("tui requires a run")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	enemyBar := progress.New(progress.WithSolidFill("#FF5F87"), progress.WithoutPercentage())
	playerBar := progress.New(progress.WithSolidFill("#5FD787"), progress.WithoutPercentage())
	enemyBar.Width = 30
	playerBar.Width = 30

	m := Model{
		run:       cfg.Run,
		store:     cfg.Store,
		logger:    logger,
		enemyBar:  enemyBar,
		playerBar: playerBar,
		lastTick:  time.Now(),
		tickRate:  tickRate,
		width:     80,
	}

	enc, err := cfg.Run.NextEncounter()
	if err != nil {
		return Model{}, err
	}
	m.enc = enc
	m, _ = m.applyBatch(enc.Start())
	return m, nil
}

// Run drives the program on the caller's terminal until the run ends or
// the player quits.
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles key presses, frame ticks, and paced enemy turns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 30
		if w < 10 {
			w = 10
		}
		if w > 40 {
			w = 40
		}
		m.enemyBar.Width = w
		m.playerBar.Width = w
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)

	case frameMsg:
		return m.onFrame(time.Time(msg))

	case enemyActMsg:
		if m.screen != screenBattle || m.enc == nil {
			return m, nil
		}
		mm, cmd := m.applyBatch(m.enc.EnemyAct())
		return mm, cmd

	case reportSavedMsg:
		if msg.err != nil {
			m.logger.Warn("saving battle report", zap.Error(msg.err))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenBattle:
		return m.battleKey(msg)
	case screenEncounterEnd:
		return m.advance()
	case screenRunEnd:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) battleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.enc == nil {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return m.applyBatch(m.enc.Flee())
	case tea.KeyBackspace:
		return m.applyBatch(m.enc.HandleBackspace())
	case tea.KeySpace:
		return m.applyBatch(m.enc.HandleKey(' '))
	case tea.KeyRunes:
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			var cmd tea.Cmd
			m, cmd = m.applyBatch(m.enc.HandleKey(r))
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m Model) onFrame(now time.Time) (tea.Model, tea.Cmd) {
	delta := now.Sub(m.lastTick).Seconds()
	m.lastTick = now

	if m.shake > 0 {
		m.shake -= shakeDecay * delta
		if m.shake < 0 {
			m.shake = 0
		}
	}

	cmds := []tea.Cmd{m.tick()}
	if m.screen == screenBattle && m.enc != nil && delta > 0 {
		var cmd tea.Cmd
		m, cmd = m.applyBatch(m.enc.Tick(delta))
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// applyBatch folds one event batch into the model: log lines, screen
// shake, enemy turn pacing, and the hand-off to the end screens.
func (m Model) applyBatch(events []combat.Event) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, ev := range events {
		switch ev := ev.(type) {
		case combat.Message:
			m.pushLog(ev.Text)

		case combat.DamageDealt:
			if ev.Critical {
				m.pushLog(fmt.Sprintf("Critical strike for %d damage!", ev.Amount))
			} else {
				m.pushLog(fmt.Sprintf("You strike for %d damage.", ev.Amount))
			}

		case combat.DamageTaken:
			if ev.Blocked > 0 {
				m.pushLog(fmt.Sprintf("Your shield absorbs %d.", ev.Blocked))
			}

		case combat.WordFailed:
			m.pushLog(failLine(ev))

		case combat.ComboLost:
			if ev.WasCombo > 1 {
				m.pushLog(fmt.Sprintf("Combo of %d broken.", ev.WasCombo))
			}

		case combat.ScreenShake:
			if ev.Intensity > m.shake {
				m.shake = ev.Intensity
			}

		case combat.PhaseChanged:
			switch {
			case ev.To == combat.PhaseEnemyTurn:
				cmds = append(cmds, tea.Tick(enemyActDelay, func(time.Time) tea.Msg { return enemyActMsg{} }))
			case ev.To.Terminal():
				if rep, ok := m.enc.Report(); ok {
					m.report = &rep
					m.screen = screenEncounterEnd
					if m.store != nil {
						cmds = append(cmds, saveReport(m.store, rep))
					}
				}
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// advance leaves the encounter end screen: the run absorbs the report and
// either the next floor begins or the run end screen takes over.
func (m Model) advance() (tea.Model, tea.Cmd) {
	if _, err := m.run.CompleteEncounter(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.enc = nil
	m.report = nil
	m.log = nil
	m.shake = 0

	if m.run.Finished() {
		m.screen = screenRunEnd
		return m, nil
	}

	enc, err := m.run.NextEncounter()
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.enc = enc
	m.screen = screenBattle
	mm, cmd := m.applyBatch(enc.Start())
	return mm, cmd
}

func (m *Model) pushLog(line string) {
	m.log = trimLog(append(m.log, line), logLines)
}

// saveReport writes the report off the update loop.
func saveReport(store ReportStore, rep session.Report) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return reportSavedMsg{err: store.Create(ctx, &rep)}
	}
}

func failLine(ev combat.WordFailed) string {
	switch ev.Reason {
	case combat.FailTimeout:
		return fmt.Sprintf("Too slow! The word %q slips away.", ev.Word)
	case combat.FailInterrupted:
		return fmt.Sprintf("Your word %q is cut short.", ev.Word)
	default:
		return fmt.Sprintf("Fumbled %q.", ev.Word)
	}
}

// trimLog keeps the newest max lines.
func trimLog(lines []string, max int) []string {
	if len(lines) <= max {
		return lines
	}
	return lines[len(lines)-max:]
}
