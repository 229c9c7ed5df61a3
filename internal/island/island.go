// Package island provides the raid target entity: an island holding money
// and defended by marines, with its derived ratio and crew-dependent score.
package island

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned when an island is created with negative or
// non-finite money, or negative marines.
var ErrInvalid = errors.New("invalid island")

// Island is a raid target. Money and marines are only changed through
// Reset and Plunder so the ratio never goes stale.
type Island struct {
	Name string `json:"name" db:"name"`

	money   float64
	marines int
	ratio   float64
}

// Validate checks money and marines against the rules New enforces: money
// finite and non-negative, marines non-negative.
func Validate(name string, money float64, marines int) error {
	if math.IsNaN(money) || math.IsInf(money, 0) || money < 0 {
		return fmt.Errorf("%w: %q money %v", ErrInvalid, name, money)
	}
	if marines < 0 {
		return fmt.Errorf("%w: %q marines %d", ErrInvalid, name, marines)
	}
	return nil
}

// New creates an island and computes its ratio.
func New(name string, money float64, marines int) (*Island, error) {
	if err := Validate(name, money, marines); err != nil {
		return nil, err
	}
	i := &Island{Name: name}
	i.Reset(money, marines)
	return i, nil
}

// MustNew is New for literal tables; it panics on invalid input.
func MustNew(name string, money float64, marines int) *Island {
	i, err := New(name, money, marines)
	if err != nil {
		panic(err)
	}
	return i
}

// Money returns the loot still held by the island.
func (i *Island) Money() float64 { return i.money }

// Marines returns the island's remaining defenders.
func (i *Island) Marines() int { return i.marines }

// Ratio returns marines per unit of money (lower is a better target).
// Zero money yields +Inf.
func (i *Island) Ratio() float64 { return i.ratio }

// Sunk reports whether every marine has been defeated.
func (i *Island) Sunk() bool { return i.marines == 0 }

// Reset replaces money and marines and recomputes the ratio.
// An island held by an ordered structure must be removed first.
func (i *Island) Reset(money float64, marines int) {
	i.money = money
	i.marines = marines
	i.ratio = Ratio(money, marines)
}

// Score rates the island for a crew of the given size. Surplus crew beyond
// the marines counts double; the rest is the loot the crew would carry off.
func (i *Island) Score(crew int) float64 {
	return 2*float64(max(crew-i.marines, 0)) + Loot(i.money, i.marines, crew)
}

// Plunder sends a crew at the island. It returns the crew that engaged and
// the loot taken, then applies the damage: money falls by the loot
// (computed against the marines before the fight) and marines fall by the
// crew size.
func (i *Island) Plunder(crew int) (sent int, loot float64) {
	if crew <= 0 {
		return 0, 0
	}
	sent = min(crew, i.marines)
	loot = Loot(i.money, i.marines, crew)
	i.Reset(i.money-loot, i.marines-sent)
	return sent, loot
}

// Profitability is money per defender, with at least one defender assumed.
func (i *Island) Profitability() float64 {
	return i.money / float64(max(i.marines, 1))
}

func (i *Island) String() string {
	return fmt.Sprintf("%s(money=%.2f, marines=%d)", i.Name, i.money, i.marines)
}

// Ratio is max(marines,1)/money, or +Inf for zero money.
func Ratio(money float64, marines int) float64 {
	if money == 0 {
		return math.Inf(1)
	}
	return float64(max(marines, 1)) / money
}

// Loot is the money a crew carries off: proportional to crew per defender,
// capped at everything the island holds. Zero marines count as one.
func Loot(money float64, marines, crew int) float64 {
	if crew <= 0 {
		return 0
	}
	return math.Min(money, float64(crew)*money/float64(max(marines, 1)))
}
