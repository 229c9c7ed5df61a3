package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/plunder/internal/island"
	"github.com/talgya/plunder/internal/raid"
)

// Event is a notable occurrence during the voyage.
type Event struct {
	Day         uint64 `json:"day" db:"day"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "plunder", "sunk", "idle", "arrival"
}

// Raid is one pirate round, flattened for storage.
type Raid struct {
	VoyageID string  `db:"voyage_id"`
	Day      uint64  `db:"day"`
	Round    int     `db:"round"`
	Island   string  `db:"island"` // Empty for an idle round
	Crew     int     `db:"crew"`
	Loot     float64 `db:"loot"`
}

// VoyageStats tracks aggregate results.
type VoyageStats struct {
	Days        int     `json:"days"`
	TotalLoot   float64 `json:"total_loot"`
	CrewSent    int     `json:"crew_sent"`
	Rounds      int     `json:"rounds"`
	IdleRounds  int     `json:"idle_rounds"`
	IslandsSunk int     `json:"islands_sunk"`
	Arrivals    int     `json:"arrivals"`
	Held        int     `json:"held"`
}

// maxEvents bounds the event log kept in memory.
const maxEvents = 1000

// Voyage runs the dynamic allocator day after day.
type Voyage struct {
	ID     string
	Raider *raid.Dynamic

	// CrewSchedule gives the crew per round for successive days and repeats.
	CrewSchedule []int

	// Reinforce, if set, supplies islands arriving at the end of each week.
	Reinforce func(day uint64) []*island.Island

	LastDay uint64
	Events  []Event
	Pending []Raid // Raids not yet persisted
	Stats   VoyageStats
}

// NewVoyage creates a voyage over an existing allocator.
func NewVoyage(id string, raider *raid.Dynamic, schedule []int) *Voyage {
	v := &Voyage{
		ID:           id,
		Raider:       raider,
		CrewSchedule: schedule,
	}
	v.Stats.Held = raider.Len()
	return v
}

// CrewFor returns the crew size used on a 1-based day.
func (v *Voyage) CrewFor(day uint64) int {
	if len(v.CrewSchedule) == 0 || day == 0 {
		return 0
	}
	return v.CrewSchedule[(day-1)%uint64(len(v.CrewSchedule))]
}

// TickDay simulates one day and records what happened.
func (v *Voyage) TickDay(day uint64) []raid.Assignment {
	v.LastDay = day
	crew := v.CrewFor(day)
	rounds := v.Raider.SimulateDay(crew)

	dayLoot := 0.0
	sunk, idle := 0, 0
	for n, a := range rounds {
		rec := Raid{VoyageID: v.ID, Day: day, Round: n + 1, Crew: a.Crew, Loot: a.Loot}
		v.Stats.Rounds++
		if a.Island == nil {
			idle++
			v.Pending = append(v.Pending, rec)
			continue
		}
		rec.Island = a.Island.Name
		v.Pending = append(v.Pending, rec)

		dayLoot += a.Loot
		v.Stats.CrewSent += a.Crew
		v.record(day, "plunder", fmt.Sprintf("%d pirates took %.2f from %s", a.Crew, a.Loot, a.Island.Name))
		if a.Island.Sunk() {
			sunk++
			v.record(day, "sunk", fmt.Sprintf("%s has fallen", a.Island.Name))
		}
	}
	if idle > 0 {
		v.record(day, "idle", fmt.Sprintf("%d rounds found nothing to raid", idle))
	}

	v.Stats.Days++
	v.Stats.TotalLoot += dayLoot
	v.Stats.IslandsSunk += sunk
	v.Stats.IdleRounds += idle
	v.Stats.Held = v.Raider.Len()

	slog.Info("daily report",
		"voyage", v.ID,
		"day", day,
		"time", VoyageTime(day),
		"crew", crew,
		"loot", fmt.Sprintf("%.2f", dayLoot),
		"sunk", sunk,
		"held", v.Stats.Held,
		"total_loot", fmt.Sprintf("%.2f", v.Stats.TotalLoot),
	)
	return rounds
}

// TickWeek brings in reinforcement islands and trims the event log.
func (v *Voyage) TickWeek(day uint64) {
	if v.Reinforce != nil {
		arriving := v.Reinforce(day)
		kept := v.Raider.AddIslands(arriving)
		v.Stats.Arrivals += kept
		v.Stats.Held = v.Raider.Len()
		if kept > 0 {
			v.record(day, "arrival", fmt.Sprintf("%d of %d sighted islands worth raiding", kept, len(arriving)))
		}
	}

	slog.Info("weekly summary",
		"voyage", v.ID,
		"day", day,
		"time", VoyageTime(day),
		"events_this_week", len(v.Events),
		"held", v.Stats.Held,
	)
	if len(v.Events) > maxEvents {
		v.Events = v.Events[len(v.Events)-maxEvents:]
	}
}

// ClearPending drops raids that have been persisted.
func (v *Voyage) ClearPending() {
	v.Pending = v.Pending[:0]
}

func (v *Voyage) record(day uint64, category, desc string) {
	v.Events = append(v.Events, Event{Day: day, Description: desc, Category: category})
}
