package enemy

import (
	"errors"
	"fmt"
)

// eliteChancePerFloor grows the elite encounter rate with depth, capped so
// normal enemies never disappear entirely.
const (
	eliteChancePerFloor = 0.05
	eliteChanceCap      = 0.5
)

// Registry partitions validated templates by tier for spawn selection.
type Registry struct {
	normals []*Template
	elites  []*Template
	bosses  []*Template
}

// NewRegistry builds a registry from templates. Later templates override
// earlier ones with the same ID, which lets directory-loaded files replace
// built-ins.
//
// Precondition: every template must pass Validate.
// Postcondition: Returns a registry holding at least one normal-tier
// template, or an error.
func NewRegistry(templates []*Template) (*Registry, error) {
	byID := make(map[string]*Template, len(templates))
	order := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		if err := tmpl.Validate(); err != nil {
			return nil, err
		}
		if _, seen := byID[tmpl.ID]; !seen {
			order = append(order, tmpl.ID)
		}
		byID[tmpl.ID] = tmpl
	}

	r := &Registry{}
	for _, id := range order {
		tmpl := byID[id]
		switch tmpl.EffectiveTier() {
		case TierElite:
			r.elites = append(r.elites, tmpl)
		case TierBoss:
			r.bosses = append(r.bosses, tmpl)
		default:
			r.normals = append(r.normals, tmpl)
		}
	}
	if len(r.normals) == 0 {
		return nil, errors.New("enemy registry needs at least one normal-tier template")
	}
	return r, nil
}

// HasBoss reports whether any boss-tier template is registered.
func (r *Registry) HasBoss() bool {
	return len(r.bosses) > 0
}

// Pick returns a random template of the given tier.
//
// Precondition: src must be non-nil.
func (r *Registry) Pick(tier Tier, src Source) (*Template, error) {
	var pool []*Template
	switch tier {
	case TierNormal, "":
		pool = r.normals
	case TierElite:
		pool = r.elites
	case TierBoss:
		pool = r.bosses
	default:
		return nil, fmt.Errorf("enemy registry: unknown tier %q", tier)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("enemy registry: no %s templates registered", tier)
	}
	return pool[src.Intn(len(pool))], nil
}

// PickForFloor returns a template for a non-boss floor: elites appear with a
// chance of 5% per floor (capped at 50%) when any are registered, normals
// otherwise. Boss floors are the caller's decision; use Pick(TierBoss, src).
//
// Precondition: src must be non-nil.
func (r *Registry) PickForFloor(floor int, src Source) (*Template, error) {
	if floor < 1 {
		floor = 1
	}
	if len(r.elites) > 0 {
		chance := eliteChancePerFloor * float64(floor)
		if chance > eliteChanceCap {
			chance = eliteChanceCap
		}
		if src.Float64() < chance {
			return r.Pick(TierElite, src)
		}
	}
	return r.Pick(TierNormal, src)
}
