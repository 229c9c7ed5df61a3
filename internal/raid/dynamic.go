package raid

import (
	"log/slog"
	"sort"

	"github.com/talgya/plunder/internal/island"
	"github.com/talgya/plunder/internal/pqueue"
)

// ProfitThreshold is the money per marine an island must exceed to be worth
// holding for the daily simulation.
const ProfitThreshold = 2.0

// Dynamic is the day-by-day allocator. Islands are keyed by name.
type Dynamic struct {
	pirates int
	held    map[string]*island.Island
}

// NewDynamic creates an allocator that spends the given number of pirate
// rounds each day. A negative count is treated as zero.
func NewDynamic(pirates int) *Dynamic {
	return &Dynamic{
		pirates: max(pirates, 0),
		held:    make(map[string]*island.Island),
	}
}

// Pirates returns the number of rounds spent per day.
func (d *Dynamic) Pirates() int { return d.pirates }

// Len returns the number of islands still held.
func (d *Dynamic) Len() int { return len(d.held) }

// Held returns the held islands sorted by name.
func (d *Dynamic) Held() []*island.Island {
	out := make([]*island.Island, 0, len(d.held))
	for _, isl := range d.held {
		out = append(out, isl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AddIslands holds every profitable island. An island replaces any held
// island of the same name. It returns the number of islands kept.
func (d *Dynamic) AddIslands(islands []*island.Island) int {
	kept := 0
	for _, isl := range islands {
		if isl.Profitability() > ProfitThreshold {
			d.held[isl.Name] = isl
			kept++
		}
	}
	return kept
}

// bid is an island scored for one crew size. The score is fixed at push
// time, so the queue never reads a value that changed underneath it.
type bid struct {
	island *island.Island
	score  float64
}

// higherBid orders by score, then by name so equal scores pop
// alphabetically.
func higherBid(a, b bid) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.island.Name < b.island.Name
}

// SimulateDay spends one day of pirate rounds with the given crew per round.
// Each round raids the highest-scoring island; a damaged island is rescored
// and stays eligible, a sunk island is dropped for good. Rounds with nothing
// left to raid yield a nil Island and zero crew.
func (d *Dynamic) SimulateDay(crew int) []Assignment {
	bids := make([]bid, 0, len(d.held))
	for _, isl := range d.held {
		bids = append(bids, bid{island: isl, score: isl.Score(crew)})
	}
	queue := pqueue.Build[bid](bids, higherBid)

	rounds := make([]Assignment, 0, d.pirates)
	for r := 0; r < d.pirates; r++ {
		top, ok := queue.Pop()
		if !ok {
			rounds = append(rounds, Assignment{})
			continue
		}
		isl := top.island
		sent, loot := isl.Plunder(crew)
		rounds = append(rounds, Assignment{Island: isl, Crew: sent, Loot: loot})

		if !isl.Sunk() {
			queue.Push(bid{island: isl, score: isl.Score(crew)})
			continue
		}
		delete(d.held, isl.Name)
		slog.Debug("island sunk", "island", isl.Name, "round", r)
	}
	return rounds
}
