package enemy

import (
	"errors"

	"github.com/google/uuid"

	"github.com/inkhollow/wordwraith/internal/game/combat"
)

// Source is the randomness the spawner needs. Any implementation from the
// rng package satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Scaling applied at spawn time. Floor scaling is linear over floors above
// the first; tier multipliers apply on top.
const (
	hpPerFloor     = 0.15
	attackPerFloor = 0.10

	eliteHPMult     = 1.5
	eliteAttackMult = 1.3
	eliteRewardMult = 2

	bossHPMult     = 2.5
	bossAttackMult = 1.5
	bossRewardMult = 5

	// hpJitter spreads spawned HP across [90%, 110%) of the scaled value.
	hpJitter = 0.10
)

// Enemy is a live spawn. CurrentHP mirrors the combat engine's authoritative
// value; the session copies it back when an encounter ends.
type Enemy struct {
	InstanceID     uuid.UUID
	TemplateID     string
	Name           string
	Description    string
	MaxHP          int
	CurrentHP      int
	AttackPower    int
	XPReward       int
	GoldReward     int
	Floor          int
	Tier           Tier
	TypingTheme    string
	AttackMessages []string
	BattleCry      string
	DefeatMessage  string
}

// Spawn creates a live enemy from tmpl scaled to floor: +15% HP and +10%
// attack per floor above the first, tier multipliers on top, and a ±10% HP
// jitter drawn from src. Elite spawns get an "Elite" name prefix.
//
// Precondition: tmpl must pass Validate; src must be non-nil.
// Postcondition: MaxHP >= 1, AttackPower >= 1, CurrentHP == MaxHP.
func Spawn(tmpl *Template, floor int, src Source) (*Enemy, error) {
	if tmpl == nil {
		return nil, errors.New("enemy: spawn requires a template")
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("enemy: spawn requires a randomness source")
	}
	if floor < 1 {
		floor = 1
	}

	depth := float64(floor - 1)
	hp := float64(tmpl.BaseHP) * (1 + hpPerFloor*depth)
	attack := float64(tmpl.BaseAttack) * (1 + attackPerFloor*depth)
	xp := tmpl.XPReward
	gold := tmpl.GoldReward
	name := tmpl.Name

	switch tmpl.EffectiveTier() {
	case TierElite:
		hp *= eliteHPMult
		attack *= eliteAttackMult
		xp *= eliteRewardMult
		gold *= eliteRewardMult
		name = "Elite " + name
	case TierBoss:
		hp *= bossHPMult
		attack *= bossAttackMult
		xp *= bossRewardMult
		gold *= bossRewardMult
	}

	hp *= 1 - hpJitter + 2*hpJitter*src.Float64()

	maxHP := int(hp)
	if maxHP < 1 {
		maxHP = 1
	}
	attackPower := int(attack)
	if attackPower < 1 {
		attackPower = 1
	}

	return &Enemy{
		InstanceID:     uuid.New(),
		TemplateID:     tmpl.ID,
		Name:           name,
		Description:    tmpl.Description,
		MaxHP:          maxHP,
		CurrentHP:      maxHP,
		AttackPower:    attackPower,
		XPReward:       xp,
		GoldReward:     gold,
		Floor:          floor,
		Tier:           tmpl.EffectiveTier(),
		TypingTheme:    tmpl.TypingTheme,
		AttackMessages: tmpl.AttackMessages,
		BattleCry:      tmpl.BattleCry,
		DefeatMessage:  tmpl.DefeatMessage,
	}, nil
}

// IsBoss reports whether this spawn fights under boss rules.
func (e *Enemy) IsBoss() bool {
	return e.Tier == TierBoss
}

// IsDead reports whether the enemy has zero or fewer hit points.
func (e *Enemy) IsDead() bool {
	return e.CurrentHP <= 0
}

// Info converts the spawn into the combat engine's enemy view.
func (e *Enemy) Info() combat.EnemyInfo {
	return combat.EnemyInfo{
		Name:           e.Name,
		MaxHP:          e.MaxHP,
		AttackPower:    e.AttackPower,
		XP:             e.XPReward,
		Gold:           e.GoldReward,
		IsBoss:         e.IsBoss(),
		TypingTheme:    e.TypingTheme,
		AttackMessages: e.AttackMessages,
	}
}
