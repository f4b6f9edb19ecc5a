package tui

import (
	"fmt"
	"strings"
	"time"
)

// timerBarWidth is the rune width of the word timer gauge.
const timerBarWidth = 24

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenEncounterEnd:
		return m.encounterEndView()
	case screenRunEnd:
		return m.runEndView()
	default:
		return m.battleView()
	}
}

func (m Model) battleView() string {
	if m.enc == nil {
		return ""
	}
	eng := m.enc.Engine()
	info := eng.Enemy()

	var b strings.Builder

	b.WriteString(styleHeader.Render(fmt.Sprintf("Floor %d · Turn %d", eng.Floor(), eng.Turn())))
	b.WriteString("\n\n")

	nameStyle := styleEnemyName
	if info.IsBoss {
		nameStyle = styleBossName
	}
	b.WriteString(nameStyle.Render(info.Name))
	b.WriteString("\n")
	b.WriteString(m.enemyBar.ViewAs(hpPercent(eng.EnemyHP(), eng.EnemyMaxHP())))
	b.WriteString(fmt.Sprintf("  %d/%d", eng.EnemyHP(), eng.EnemyMaxHP()))
	b.WriteString("\n\n")

	indent := strings.Repeat(" ", shakeOffset(m.shake))
	b.WriteString(indent)
	b.WriteString(renderWord(eng.CurrentWord(), classifyRunes(len([]rune(eng.CurrentWord())), len([]rune(eng.TypedInput())), eng.CharCorrectness())))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(timerBar(eng.TimeRemaining(), eng.TimeLimit(), timerBarWidth))
	if eng.TypingStarted() {
		b.WriteString(fmt.Sprintf("  %.1fs", eng.TimeRemaining()))
	} else {
		b.WriteString("  type to begin")
	}
	b.WriteString("\n\n")

	p := m.run.Player()
	perf := eng.Performance()
	status := fmt.Sprintf("combo x%d · %.0f wpm · %.0f%% · HP %d/%d",
		eng.Combo(), perf.AverageWPM(), perf.AverageAccuracy()*100, p.HP, p.MaxHP)
	if eng.PlayerShield() > 0 {
		status += fmt.Sprintf(" · shield %d", eng.PlayerShield())
	}
	b.WriteString(styleStatus.Render(status))
	b.WriteString("\n")
	b.WriteString(m.playerBar.ViewAs(hpPercent(p.HP, p.MaxHP)))
	b.WriteString("\n\n")

	for _, line := range m.log {
		b.WriteString(styleLogLine.Render("▸ " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("esc flee · ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) encounterEndView() string {
	if m.report == nil {
		return ""
	}
	rep := m.report

	var banner string
	switch {
	case rep.Victory:
		banner = styleVictory.Render("VICTORY")
	case rep.Fled:
		banner = styleFled.Render("ESCAPED")
	default:
		banner = styleDefeat.Render("DEFEAT")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(banner)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s · floor %d · %s\n\n", rep.EnemyName, rep.Floor, rep.Duration.Round(100*time.Millisecond)))
	b.WriteString(fmt.Sprintf("words %d · perfect %d · best combo x%d\n", rep.WordsCompleted, rep.PerfectWords, rep.BestCombo))
	b.WriteString(fmt.Sprintf("accuracy %.0f%% · peak %.0f wpm · turns %d\n", rep.Accuracy*100, rep.PeakWPM, rep.TurnsTaken))
	if rep.Victory {
		b.WriteString(fmt.Sprintf("+%d xp · +%d gold\n", rep.XPEarned, rep.GoldEarned))
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("press any key to continue"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) runEndView() string {
	totals := m.run.Totals()
	p := m.run.Player()

	var banner string
	if m.run.Cleared() {
		banner = styleVictory.Render("TOWER CLEARED")
	} else {
		banner = styleDefeat.Render("THE RUN ENDS")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(banner)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s the %s · level %d\n\n", p.Name, p.Class.Name, p.Level))
	b.WriteString(fmt.Sprintf("floors cleared %d · words %d · perfect %d\n", totals.FloorsCleared, totals.WordsCompleted, totals.PerfectWords))
	b.WriteString(fmt.Sprintf("best combo x%d · peak %.0f wpm\n", totals.BestCombo, totals.PeakWPM))
	b.WriteString(fmt.Sprintf("%d xp · %d gold\n", totals.XP, totals.Gold))
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("press any key to quit"))
	b.WriteString("\n")
	return b.String()
}

type runeClass int

const (
	runeCorrect runeClass = iota
	runeWrong
	runeCursor
	runePending
)

// classifyRunes maps each rune of the target word to a display class:
// typed runes carry their correctness trace, the next rune is the cursor,
// the rest are pending.
func classifyRunes(wordLen, typedLen int, correct []bool) []runeClass {
	classes := make([]runeClass, wordLen)
	for i := range classes {
		switch {
		case i < typedLen && i < len(correct):
			if correct[i] {
				classes[i] = runeCorrect
			} else {
				classes[i] = runeWrong
			}
		case i == typedLen:
			classes[i] = runeCursor
		default:
			classes[i] = runePending
		}
	}
	return classes
}

func renderWord(word string, classes []runeClass) string {
	var b strings.Builder
	for i, r := range []rune(word) {
		s := string(r)
		if s == " " {
			s = "·"
		}
		if i >= len(classes) {
			b.WriteString(stylePending.Render(s))
			continue
		}
		switch classes[i] {
		case runeCorrect:
			b.WriteString(styleTypedOK.Render(s))
		case runeWrong:
			b.WriteString(styleTypedBad.Render(s))
		case runeCursor:
			b.WriteString(styleCursor.Render(s))
		default:
			b.WriteString(stylePending.Render(s))
		}
	}
	return b.String()
}

// timerFill converts the remaining time into filled gauge cells.
func timerFill(remaining, limit float64, width int) int {
	if limit <= 0 || width <= 0 {
		return 0
	}
	frac := remaining / limit
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	fill := int(frac*float64(width) + 0.5)
	if fill > width {
		fill = width
	}
	return fill
}

func timerBar(remaining, limit float64, width int) string {
	fill := timerFill(remaining, limit, width)

	style := styleTimerOK
	if limit > 0 {
		frac := remaining / limit
		if frac <= 0.25 {
			style = styleTimerLow
		} else if frac <= 0.5 {
			style = styleTimerWarn
		}
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(style.Render(strings.Repeat("█", fill)))
	b.WriteString(strings.Repeat("░", width-fill))
	b.WriteString("]")
	return b.String()
}

func hpPercent(hp, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	if hp < 0 {
		hp = 0
	}
	return float64(hp) / float64(maxHP)
}

// shakeOffset turns shake intensity into a horizontal nudge in cells.
func shakeOffset(shake float64) int {
	off := int(shake*4 + 0.5)
	if off > 4 {
		off = 4
	}
	if off < 0 {
		off = 0
	}
	return off
}
