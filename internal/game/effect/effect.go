// Package effect implements the status effects that modify typing encounters:
// haste and slow stretch or shrink the word timer, poison and regen apply HP
// deltas between turns. The combat engine never sees effects; the session
// folds TimeScale into the encounter's difficulty parameters up front and
// applies TickTurn deltas itself.
package effect

import "fmt"

// Kind identifies one status effect.
type Kind int

const (
	Haste Kind = iota
	Slow
	Poison
	Regen
)

// tickOrder fixes the iteration order so turn deltas and expiry reports are
// deterministic.
var tickOrder = [...]Kind{Haste, Slow, Poison, Regen}

func (k Kind) String() string {
	switch k {
	case Haste:
		return "haste"
	case Slow:
		return "slow"
	case Poison:
		return "poison"
	case Regen:
		return "regen"
	default:
		return "unknown"
	}
}

// ParseKind converts an effect name from YAML or script input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "haste":
		return Haste, nil
	case "slow":
		return Slow, nil
	case "poison":
		return Poison, nil
	case "regen":
		return Regen, nil
	default:
		return 0, fmt.Errorf("effect: unknown kind %q", s)
	}
}

// Effect is one applied status effect.
//
// Magnitude is a timer fraction for Haste and Slow (0.25 stretches or shrinks
// the word timer by 25%) and whole HP per turn for Poison and Regen (the
// integer part is applied).
type Effect struct {
	Kind      Kind
	Magnitude float64
	Turns     int
}

// TurnDelta is the aggregate outcome of one TickTurn call.
type TurnDelta struct {
	// HP is the net player HP change from poison and regen this turn.
	HP int
	// Expired lists effects that wore off this turn, in a fixed kind order.
	Expired []Kind
}

// Active tracks the effects currently applied to one combatant, at most one
// per kind. It is not safe for concurrent use; the caller must serialise
// access.
type Active struct {
	effects map[Kind]*Effect
}

// NewActive creates an empty Active set.
func NewActive() *Active {
	return &Active{effects: make(map[Kind]*Effect)}
}

// Apply adds e to the set. Reapplying a kind keeps the stronger magnitude and
// the longer remaining duration rather than stacking.
//
// Precondition: e.Magnitude > 0 and e.Turns > 0.
func (a *Active) Apply(e Effect) error {
	if e.Magnitude <= 0 {
		return fmt.Errorf("effect: %s magnitude must be positive, got %v", e.Kind, e.Magnitude)
	}
	if e.Turns <= 0 {
		return fmt.Errorf("effect: %s duration must be positive, got %d turns", e.Kind, e.Turns)
	}

	if existing, ok := a.effects[e.Kind]; ok {
		if e.Magnitude > existing.Magnitude {
			existing.Magnitude = e.Magnitude
		}
		if e.Turns > existing.Turns {
			existing.Turns = e.Turns
		}
		return nil
	}

	applied := e
	a.effects[e.Kind] = &applied
	return nil
}

// Remove deletes the effect of the given kind. Removing an absent kind is a
// no-op.
func (a *Active) Remove(k Kind) {
	delete(a.effects, k)
}

// Has reports whether an effect of kind k is currently active.
func (a *Active) Has(k Kind) bool {
	_, ok := a.effects[k]
	return ok
}

// Magnitude returns the magnitude for kind k, or 0 if absent.
func (a *Active) Magnitude(k Kind) float64 {
	if e, ok := a.effects[k]; ok {
		return e.Magnitude
	}
	return 0
}

// TurnsLeft returns the remaining duration for kind k, or 0 if absent.
func (a *Active) TurnsLeft(k Kind) int {
	if e, ok := a.effects[k]; ok {
		return e.Turns
	}
	return 0
}

// TimeScale returns the multiplier for the encounter's time-per-character:
// haste stretches the timer by its magnitude, slow shrinks it. The result is
// clamped to [0.25, 3.0] so no combination zeroes the word timer.
func (a *Active) TimeScale() float64 {
	scale := 1.0 + a.Magnitude(Haste) - a.Magnitude(Slow)
	if scale < 0.25 {
		scale = 0.25
	}
	if scale > 3.0 {
		scale = 3.0
	}
	return scale
}

// TickTurn advances every active effect by one turn, removing the ones that
// expire, and returns the net HP delta from poison and regen.
//
// Postcondition: every kind in the returned Expired slice is no longer active.
func (a *Active) TickTurn() TurnDelta {
	var delta TurnDelta
	for _, k := range tickOrder {
		e, ok := a.effects[k]
		if !ok {
			continue
		}
		switch k {
		case Poison:
			delta.HP -= int(e.Magnitude)
		case Regen:
			delta.HP += int(e.Magnitude)
		}
		e.Turns--
		if e.Turns <= 0 {
			delta.Expired = append(delta.Expired, k)
			delete(a.effects, k)
		}
	}
	return delta
}

// All returns the active effects in a fixed kind order. The returned values
// are copies; mutating them does not affect the set.
func (a *Active) All() []Effect {
	out := make([]Effect, 0, len(a.effects))
	for _, k := range tickOrder {
		if e, ok := a.effects[k]; ok {
			out = append(out, *e)
		}
	}
	return out
}
