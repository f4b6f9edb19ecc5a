package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type firstPick struct{}

func (firstPick) Intn(int) int     { return 0 }
func (firstPick) Float64() float64 { return 0.99 }

func TestPick_FallsBackToLowerPopulatedTier(t *testing.T) {
	tiers := map[int][]string{
		1: {"low"},
		4: {"mid"},
	}

	assert.Equal(t, "low", pick(tiers, 3, firstPick{}))
	assert.Equal(t, "mid", pick(tiers, 4, firstPick{}))
	assert.Equal(t, "mid", pick(tiers, 9, firstPick{}))
}

func TestPick_PanicsWithoutPopulatedTier(t *testing.T) {
	assert.Panics(t, func() {
		pick(map[int][]string{}, 5, firstPick{})
	})
}

func TestClampTier(t *testing.T) {
	assert.Equal(t, MinTier, clampTier(-3))
	assert.Equal(t, MinTier, clampTier(0))
	assert.Equal(t, 7, clampTier(7))
	assert.Equal(t, MaxTier, clampTier(11))
}
