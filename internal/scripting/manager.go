package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// defaultTheme is the reserved key for themes/default.lua. Hook dispatch
// falls back to this VM when an enemy's theme has no script of its own.
const defaultTheme = "default"

// themesSubdir is where LoadThemes looks for scripts under the script root.
const themesSubdir = "themes"

// Source supplies the randomness behind game.roll. Any source from the rng
// package satisfies it.
type Source interface {
	Intn(n int) int
}

// Manager owns one sandboxed LState per typing theme and dispatches flavor
// hooks. Hook dispatch never fails: Lua runtime errors are logged at Warn
// level and swallowed, so flavor cannot break combat.
//
// Each LState is single-threaded. The session drives all hooks from one
// goroutine; the lock only guards the theme map against a concurrent reload.
type Manager struct {
	mu     sync.RWMutex
	states map[string]*lua.LState
	limit  int
	src    Source
	logger *zap.Logger

	// Snapshot feeds the read-only game.* getters. Injected after
	// construction; nil leaves every getter at its zero value.
	Snapshot func() GameSnapshot
}

// NewManager creates a Manager with no themes loaded.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty theme map.
func NewManager(src Source, logger *zap.Logger) *Manager {
	if src == nil {
		panic("scripting: NewManager requires a randomness source")
	}
	if logger == nil {
		panic("scripting: NewManager requires a logger")
	}
	return &Manager{
		states: make(map[string]*lua.LState),
		limit:  DefaultInstructionLimit,
		src:    src,
		logger: logger,
	}
}

// LoadThemes creates one sandboxed VM per themes/<name>.lua file under
// scriptDir. The file base name becomes the theme key; themes/default.lua
// becomes the fallback VM for themes without a script of their own. A
// successful load replaces the previously loaded set.
//
// Precondition: scriptDir must contain a readable themes directory.
// Postcondition: every theme VM ran its file within the instruction budget.
func (m *Manager) LoadThemes(scriptDir string, instLimit int) error {
	limit := instLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}

	themesDir := filepath.Join(scriptDir, themesSubdir)
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return fmt.Errorf("scripting: reading theme dir %q: %w", themesDir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	loaded := make(map[string]*lua.LState, len(names))
	for _, name := range names {
		path := filepath.Join(themesDir, name)
		L := NewSandboxedState()
		m.RegisterModules(L)

		cancel := WithBudget(L, limit)
		err := L.DoFile(path)
		cancel()
		if err != nil {
			L.Close()
			for _, old := range loaded {
				old.Close()
			}
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
		loaded[strings.TrimSuffix(name, ".lua")] = L
	}

	m.mu.Lock()
	for _, old := range m.states {
		old.Close()
	}
	m.states = loaded
	m.limit = limit
	m.mu.Unlock()
	return nil
}

// Themes returns the loaded theme keys in sorted order.
func (m *Manager) Themes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.states))
	for name := range m.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CallHook calls the named Lua global in the theme's VM, falling back to the
// default theme when the theme has no VM of its own. Returns LNil when no VM
// or hook exists. Lua runtime errors are logged at Warn level and swallowed.
//
// Precondition: args must belong to the resolved VM or be VM-independent
// primitives (numbers, strings, booleans).
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(theme, hook string, args ...lua.LValue) lua.LValue {
	L, ok := m.state(theme)
	if !ok {
		m.logger.Debug("scripting: no VM for theme",
			zap.String("theme", theme),
			zap.String("hook", hook),
		)
		return lua.LNil
	}
	return m.call(L, theme, hook, args...)
}

// Close releases every theme VM. Hook calls afterwards behave as if no
// themes were loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, L := range m.states {
		L.Close()
	}
	m.states = make(map[string]*lua.LState)
}

// state resolves a theme to its VM, trying the default theme as a fallback.
func (m *Manager) state(theme string) (*lua.LState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	L, ok := m.states[theme]
	if !ok {
		L, ok = m.states[defaultTheme]
	}
	return L, ok
}

func (m *Manager) budget() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.limit
}

// call runs a hook under a fresh instruction budget and returns its first
// return value. Errors are logged and the VM stack is cleared so the next
// call starts clean.
func (m *Manager) call(L *lua.LState, theme, hook string, args ...lua.LValue) lua.LValue {
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	cancel := WithBudget(L, m.budget())
	defer cancel()

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: lua runtime error",
			zap.String("theme", theme),
			zap.String("hook", hook),
			zap.Error(err),
		)
		L.SetTop(0)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}
