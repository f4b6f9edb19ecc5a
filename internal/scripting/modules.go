package scripting

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// GameSnapshot is the read-only state the game.* module exposes to scripts.
type GameSnapshot struct {
	PlayerName   string
	PlayerHP     int
	PlayerMaxHP  int
	PlayerShield int
	EnemyName    string
	EnemyHP      int
	EnemyMaxHP   int
	Floor        int
	Turn         int
	Combo        int
}

// RegisterModules registers the game table into L and reroutes print to the
// debug log so scripts cannot write to the terminal the UI owns.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: game global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	game := L.NewTable()
	L.SetField(game, "roll", L.NewFunction(m.luaRoll))
	L.SetField(game, "player_name", m.stringGetter(L, func(s GameSnapshot) string { return s.PlayerName }))
	L.SetField(game, "player_hp", m.intGetter(L, func(s GameSnapshot) int { return s.PlayerHP }))
	L.SetField(game, "player_max_hp", m.intGetter(L, func(s GameSnapshot) int { return s.PlayerMaxHP }))
	L.SetField(game, "player_shield", m.intGetter(L, func(s GameSnapshot) int { return s.PlayerShield }))
	L.SetField(game, "enemy_name", m.stringGetter(L, func(s GameSnapshot) string { return s.EnemyName }))
	L.SetField(game, "enemy_hp", m.intGetter(L, func(s GameSnapshot) int { return s.EnemyHP }))
	L.SetField(game, "enemy_max_hp", m.intGetter(L, func(s GameSnapshot) int { return s.EnemyMaxHP }))
	L.SetField(game, "floor", m.intGetter(L, func(s GameSnapshot) int { return s.Floor }))
	L.SetField(game, "turn", m.intGetter(L, func(s GameSnapshot) int { return s.Turn }))
	L.SetField(game, "combo", m.intGetter(L, func(s GameSnapshot) int { return s.Combo }))
	L.SetGlobal("game", game)

	L.SetGlobal("print", L.NewFunction(m.luaPrint))
}

// luaRoll implements game.roll(n): a uniform integer in [1, n].
func (m *Manager) luaRoll(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 {
		L.ArgError(1, "roll needs n >= 1")
		return 0
	}
	L.Push(lua.LNumber(m.src.Intn(n) + 1))
	return 1
}

// luaPrint routes script output to the debug log.
func (m *Manager) luaPrint(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	m.logger.Debug("scripting: print", zap.String("text", strings.Join(parts, "\t")))
	return 0
}

func (m *Manager) snapshot() GameSnapshot {
	if m.Snapshot == nil {
		return GameSnapshot{}
	}
	return m.Snapshot()
}

func (m *Manager) intGetter(L *lua.LState, get func(GameSnapshot) int) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(get(m.snapshot())))
		return 1
	})
}

func (m *Manager) stringGetter(L *lua.LState, get func(GameSnapshot) string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(get(m.snapshot())))
		return 1
	})
}
