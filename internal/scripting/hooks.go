package scripting

import lua "github.com/yuin/gopher-lua"

// Hook names a theme script may define. Each receives read-only snapshot
// tables and may return a string the session surfaces as a message.
const (
	HookEncounterStart = "on_encounter_start"
	HookPlayerHit      = "on_player_hit"
	HookEnemyHit       = "on_enemy_hit"
	HookVictory        = "on_victory"
	HookDefeat         = "on_defeat"
)

// EnemySnapshot is the enemy state passed to theme hooks.
type EnemySnapshot struct {
	Name  string
	HP    int
	MaxHP int
	Tier  string
	Floor int
}

// PlayerSnapshot is the player state passed to theme hooks.
type PlayerSnapshot struct {
	Name   string
	HP     int
	MaxHP  int
	Shield int
	Combo  int
}

// EncounterStart runs on_encounter_start(enemy) when a fight begins.
func (m *Manager) EncounterStart(theme string, enemy EnemySnapshot) (string, bool) {
	return m.flavor(theme, HookEncounterStart, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{enemyTable(L, enemy)}
	})
}

// PlayerHit runs on_player_hit(enemy, damage) after the player lands a word.
func (m *Manager) PlayerHit(theme string, enemy EnemySnapshot, damage int) (string, bool) {
	return m.flavor(theme, HookPlayerHit, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{enemyTable(L, enemy), lua.LNumber(damage)}
	})
}

// EnemyHit runs on_enemy_hit(player, damage) after an enemy attack lands.
func (m *Manager) EnemyHit(theme string, player PlayerSnapshot, damage int) (string, bool) {
	return m.flavor(theme, HookEnemyHit, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{playerTable(L, player), lua.LNumber(damage)}
	})
}

// Victory runs on_victory(enemy) when the enemy falls.
func (m *Manager) Victory(theme string, enemy EnemySnapshot) (string, bool) {
	return m.flavor(theme, HookVictory, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{enemyTable(L, enemy)}
	})
}

// Defeat runs on_defeat(enemy) when the player falls.
func (m *Manager) Defeat(theme string, enemy EnemySnapshot) (string, bool) {
	return m.flavor(theme, HookDefeat, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{enemyTable(L, enemy)}
	})
}

// flavor resolves the theme VM, builds the hook arguments against it, and
// keeps only a non-empty string return. Anything else means no message.
func (m *Manager) flavor(theme, hook string, build func(*lua.LState) []lua.LValue) (string, bool) {
	L, ok := m.state(theme)
	if !ok {
		return "", false
	}
	ret := m.call(L, theme, hook, build(L)...)
	if s, ok := ret.(lua.LString); ok && string(s) != "" {
		return string(s), true
	}
	return "", false
}

func enemyTable(L *lua.LState, e EnemySnapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(e.Name))
	t.RawSetString("hp", lua.LNumber(e.HP))
	t.RawSetString("max_hp", lua.LNumber(e.MaxHP))
	t.RawSetString("tier", lua.LString(e.Tier))
	t.RawSetString("floor", lua.LNumber(e.Floor))
	return t
}

func playerTable(L *lua.LState, p PlayerSnapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(p.Name))
	t.RawSetString("hp", lua.LNumber(p.HP))
	t.RawSetString("max_hp", lua.LNumber(p.MaxHP))
	t.RawSetString("shield", lua.LNumber(p.Shield))
	t.RawSetString("combo", lua.LNumber(p.Combo))
	return t
}
