package sea

import (
	"math/rand"
	"strings"

	"github.com/talgya/plunder/internal/island"
)

// Namer hands out unique island names drawn from a fixed table. A table
// name that is already taken gets a numeral suffix ("Jaya II").
type Namer struct {
	names []string
	rng   *rand.Rand
	used  map[string]int
	taken map[string]bool
}

// NewNamer creates a namer over names. An empty table falls back to
// island.DefaultNames.
func NewNamer(names []string, rng *rand.Rand) *Namer {
	if len(names) == 0 {
		names = island.DefaultNames()
	}
	return &Namer{
		names: names,
		rng:   rng,
		used:  make(map[string]int),
		taken: make(map[string]bool),
	}
}

// Reserve marks a name as taken, e.g. for islands loaded from storage.
func (n *Namer) Reserve(name string) {
	n.taken[name] = true
}

// Next returns a name no earlier call or reservation has produced.
func (n *Namer) Next() string {
	base := n.names[n.rng.Intn(len(n.names))]
	for {
		n.used[base]++
		name := base
		if c := n.used[base]; c > 1 {
			name = base + " " + roman(c)
		}
		if !n.taken[name] {
			n.taken[name] = true
			return name
		}
	}
}

var numerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var b strings.Builder
	for _, num := range numerals {
		for n >= num.value {
			b.WriteString(num.symbol)
			n -= num.value
		}
	}
	return b.String()
}
