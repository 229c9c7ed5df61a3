// Package raid allocates a pirate crew across islands.
//
// Static keeps islands ordered by ratio and answers allocation queries by
// walking them best-first. Dynamic simulates days of raiding, rescoring
// every island against the day's crew and spending pirates one round at a
// time on whichever island currently scores highest.
package raid

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/plunder/internal/island"
	"github.com/talgya/plunder/internal/ordered"
)

// ErrNotHeld is returned when updating an island the allocator does not hold
// under its current ratio.
var ErrNotHeld = errors.New("island not held")

// Assignment is the crew sent to one island. Island is nil for a round in
// which nothing was left to raid.
type Assignment struct {
	Island *island.Island
	Crew   int
	Loot   float64 // Set by Dynamic only
}

// Static is the ratio-ordered allocator.
type Static struct {
	crew    int
	islands *ordered.Map[*island.Island]
}

// NewStatic orders islands by ratio for a crew of the given size.
// Islands are held by reference, not copied.
func NewStatic(islands []*island.Island, crew int) (*Static, error) {
	s := &Static{
		crew:    crew,
		islands: ordered.New[*island.Island](),
	}
	for _, isl := range islands {
		if err := s.islands.Insert(isl.Ratio(), isl); err != nil {
			return nil, fmt.Errorf("add %s: %w", isl.Name, err)
		}
	}
	return s, nil
}

// Crew returns the configured crew size.
func (s *Static) Crew() int { return s.crew }

// Len returns the number of islands held.
func (s *Static) Len() int { return s.islands.Len() }

// Allocate sends the crew at islands in ascending ratio order, each island
// receiving as many pirates as it has marines until the crew runs out.
func (s *Static) Allocate() []Assignment {
	remaining := s.crew
	var plan []Assignment
	for _, isl := range s.islands.All() {
		if remaining <= 0 {
			break
		}
		sent := min(remaining, isl.Marines())
		plan = append(plan, Assignment{Island: isl, Crew: sent})
		remaining -= sent
	}
	return plan
}

// AllocateAcross returns, for each crew size, the money the same greedy walk
// would collect. Islands are not modified. A defenceless island surrenders
// everything without consuming crew.
func (s *Static) AllocateAcross(crews []int) []float64 {
	totals := make([]float64, len(crews))
	for n, crew := range crews {
		remaining := crew
		for _, isl := range s.islands.All() {
			if remaining <= 0 {
				break
			}
			totals[n] += island.Loot(isl.Money(), isl.Marines(), remaining)
			remaining -= min(remaining, isl.Marines())
		}
	}
	return totals
}

// Update changes an island's money and marines and moves it to its new
// position. The island must be held and must not have been changed since it
// was added or last updated. Invalid values are rejected before anything
// changes.
func (s *Static) Update(isl *island.Island, money float64, marines int) error {
	if err := island.Validate(isl.Name, money, marines); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := s.islands.Delete(isl.Ratio(), isl); err != nil {
		return fmt.Errorf("update %s: %w: %w", isl.Name, ErrNotHeld, err)
	}
	old := isl.Ratio()
	isl.Reset(money, marines)
	if err := s.islands.Insert(isl.Ratio(), isl); err != nil {
		return fmt.Errorf("update %s: %w", isl.Name, err)
	}
	slog.Debug("island updated", "island", isl.Name, "old_ratio", old, "ratio", isl.Ratio())
	return nil
}

// Validate checks that every island sits under its current ratio and that
// traversal is ascending. A failure means an island was changed behind the
// allocator's back.
func (s *Static) Validate() error {
	prev := 0.0
	first := true
	for key, isl := range s.islands.All() {
		if key != isl.Ratio() {
			return fmt.Errorf("%s held under stale ratio %v, current %v", isl.Name, key, isl.Ratio())
		}
		if !first && key < prev {
			return fmt.Errorf("%s out of order: %v after %v", isl.Name, key, prev)
		}
		prev, first = key, false
	}
	return nil
}
