// Package report renders allocation results as plain-text tables.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/talgya/plunder/internal/engine"
	"github.com/talgya/plunder/internal/raid"
)

// Money formats an amount with thousands separators and at most two decimals.
func Money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// Plan writes a static allocation.
func Plan(w io.Writer, crew int, plan []raid.Assignment) error {
	tw := table(w)
	fmt.Fprintln(tw, "#\tISLAND\tMONEY\tMARINES\tRATIO\tCREW")
	sent := 0
	for n, a := range plan {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.4f\t%s\n",
			n+1, a.Island.Name, Money(a.Island.Money()),
			humanize.Comma(int64(a.Island.Marines())), a.Island.Ratio(),
			humanize.Comma(int64(a.Crew)))
		sent += a.Crew
	}
	fmt.Fprintf(tw, "\t\t\t\tsent\t%s of %s\n", humanize.Comma(int64(sent)), humanize.Comma(int64(crew)))
	return tw.Flush()
}

// Loot writes the money each crew size would collect.
func Loot(w io.Writer, crews []int, totals []float64) error {
	tw := table(w)
	fmt.Fprintln(tw, "CREW\tLOOT")
	for n, crew := range crews {
		fmt.Fprintf(tw, "%s\t%s\n", humanize.Comma(int64(crew)), Money(totals[n]))
	}
	return tw.Flush()
}

// Day writes one simulated day of the dynamic allocator.
func Day(w io.Writer, day uint64, crew int, rounds []raid.Assignment) error {
	fmt.Fprintf(w, "%s: crew of %d per round\n", engine.VoyageTime(day), crew)
	tw := table(w)
	fmt.Fprintln(tw, "ROUND\tISLAND\tCREW\tLOOT\tLEFT")
	for n, a := range rounds {
		if a.Island == nil {
			fmt.Fprintf(tw, "%d\t-\t0\t-\t-\n", n+1)
			continue
		}
		left := "sunk"
		if !a.Island.Sunk() {
			left = fmt.Sprintf("%s / %d", Money(a.Island.Money()), a.Island.Marines())
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", n+1, a.Island.Name, a.Crew, Money(a.Loot), left)
	}
	return tw.Flush()
}

// Summary writes voyage totals.
func Summary(w io.Writer, id string, s engine.VoyageStats) error {
	tw := table(w)
	fmt.Fprintf(tw, "voyage\t%s\n", id)
	fmt.Fprintf(tw, "days\t%d\n", s.Days)
	fmt.Fprintf(tw, "loot\t%s\n", Money(s.TotalLoot))
	fmt.Fprintf(tw, "crew sent\t%s\n", humanize.Comma(int64(s.CrewSent)))
	fmt.Fprintf(tw, "rounds\t%d (%d idle)\n", s.Rounds, s.IdleRounds)
	fmt.Fprintf(tw, "islands sunk\t%d\n", s.IslandsSunk)
	fmt.Fprintf(tw, "arrivals\t%d\n", s.Arrivals)
	fmt.Fprintf(tw, "still held\t%d\n", s.Held)
	return tw.Flush()
}

// Raids writes raid log rows.
func Raids(w io.Writer, raids []engine.Raid) error {
	tw := table(w)
	fmt.Fprintln(tw, "VOYAGE\tDAY\tROUND\tISLAND\tCREW\tLOOT")
	for _, r := range raids {
		name := r.Island
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%s\n", r.VoyageID, r.Day, r.Round, name, r.Crew, Money(r.Loot))
	}
	return tw.Flush()
}
