package player

import (
	"errors"
	"fmt"

	"github.com/inkhollow/wordwraith/internal/game/effect"
)

// xpPerLevel is the XP required to finish a level, multiplied by the level.
const xpPerLevel = 100

// levelUpHP is the MaxHP gained per level.
const levelUpHP = 10

// Player is the run-scoped combatant. The combat engine only ever sees it
// through its Defender methods; everything else is session bookkeeping.
type Player struct {
	Name    string
	Class   Class
	Level   int
	XP      int
	Gold    int
	MaxHP   int
	HP      int
	Shield  int
	Effects *effect.Active
}

// New creates a level-1 player of the given class.
//
// Precondition: name must be non-empty; class must pass Validate.
// Postcondition: HP == MaxHP == class.BaseHP, Shield == class.BaseShield.
func New(name string, class Class) (*Player, error) {
	if name == "" {
		return nil, errors.New("player name must not be empty")
	}
	if err := class.Validate(); err != nil {
		return nil, fmt.Errorf("invalid class: %w", err)
	}
	return &Player{
		Name:    name,
		Class:   class,
		Level:   1,
		Gold:    class.StartingGold,
		MaxHP:   class.BaseHP,
		HP:      class.BaseHP,
		Shield:  class.BaseShield,
		Effects: effect.NewActive(),
	}, nil
}

// TakeDamage reduces HP by amount, flooring at zero. Non-positive amounts
// are ignored.
//
// Postcondition: HP >= 0.
func (p *Player) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// CurrentHP returns the player's remaining HP. Together with TakeDamage it
// satisfies the combat engine's Defender.
func (p *Player) CurrentHP() int {
	return p.HP
}

// Alive reports whether the player can keep fighting.
func (p *Player) Alive() bool {
	return p.HP > 0
}

// Heal restores up to amount HP, capped at MaxHP, and returns the HP
// actually restored. Non-positive amounts heal nothing.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := amount
	if p.HP+healed > p.MaxHP {
		healed = p.MaxHP - p.HP
	}
	p.HP += healed
	return healed
}

// GainXP adds amount XP and applies any level-ups: each level requires
// level*100 XP, grants +10 MaxHP, and fully heals. Returns the number of
// levels gained. Non-positive amounts are ignored.
func (p *Player) GainXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.XP += amount
	levels := 0
	for p.XP >= p.Level*xpPerLevel {
		p.XP -= p.Level * xpPerLevel
		p.Level++
		p.MaxHP += levelUpHP
		p.HP = p.MaxHP
		levels++
	}
	return levels
}

// XPToNext returns the XP still needed for the next level.
func (p *Player) XPToNext() int {
	return p.Level*xpPerLevel - p.XP
}

// AddGold adjusts the purse. Debts clamp at zero.
func (p *Player) AddGold(amount int) {
	p.Gold += amount
	if p.Gold < 0 {
		p.Gold = 0
	}
}

// RestoreShield resets the shield to the class baseline between encounters.
func (p *Player) RestoreShield() {
	p.Shield = p.Class.BaseShield
}
