package main

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talgya/plunder/internal/engine"
	"github.com/talgya/plunder/internal/island"
	"github.com/talgya/plunder/internal/raid"
	"github.com/talgya/plunder/internal/report"
	"github.com/talgya/plunder/internal/sea"
)

func (a *app) generateCmd() *cobra.Command {
	var radius int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Chart a new sea and save it, replacing any saved islands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if radius > 0 {
				a.cfg.Sea.Radius = radius
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			chart := a.chart(cmd.Context())
			if err := db.SaveIslands(chart.Islands()); err != nil {
				return fmt.Errorf("save islands: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Charted %d islands (seed %d, radius %d).\n",
				len(chart.Sites), chart.Seed, chart.Radius)
			return nil
		},
	}
	cmd.Flags().IntVar(&radius, "radius", 0, "hex radius of the sea (overrides config)")
	return cmd
}

func (a *app) planCmd() *cobra.Command {
	var crew int
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Allocate a crew across the sea, best ratio first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("crew") {
				crew = a.cfg.Plan.Crew
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			islands, err := a.loadSea(cmd.Context(), db)
			if err != nil {
				return err
			}
			static, err := raid.NewStatic(islands, crew)
			if err != nil {
				return err
			}
			return report.Plan(cmd.OutOrStdout(), crew, static.Allocate())
		},
	}
	cmd.Flags().IntVar(&crew, "crew", 0, "crew size (defaults to plan.crew)")
	return cmd
}

func (a *app) lootCmd() *cobra.Command {
	var crews []int
	cmd := &cobra.Command{
		Use:   "loot",
		Short: "Compare the money several crew sizes would collect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(crews) == 0 {
				crews = a.cfg.Plan.Crews
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			islands, err := a.loadSea(cmd.Context(), db)
			if err != nil {
				return err
			}
			static, err := raid.NewStatic(islands, 0)
			if err != nil {
				return err
			}
			return report.Loot(cmd.OutOrStdout(), crews, static.AllocateAcross(crews))
		},
	}
	cmd.Flags().IntSliceVar(&crews, "crews", nil, "comma-separated crew sizes (defaults to plan.crews)")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var (
		money   float64
		marines int
	)
	cmd := &cobra.Command{
		Use:   "update [island]",
		Short: "Change an island's money and marines and show the new plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := island.Validate(args[0], money, marines); err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			islands, err := a.loadSea(cmd.Context(), db)
			if err != nil {
				return err
			}
			var target *island.Island
			for _, isl := range islands {
				if isl.Name == args[0] {
					target = isl
					break
				}
			}
			if target == nil {
				return fmt.Errorf("update %s: %w", args[0], raid.ErrNotHeld)
			}

			static, err := raid.NewStatic(islands, a.cfg.Plan.Crew)
			if err != nil {
				return err
			}
			if err := static.Update(target, money, marines); err != nil {
				return err
			}
			if err := static.Validate(); err != nil {
				return err
			}
			if err := db.SaveIslands(islands); err != nil {
				return fmt.Errorf("save islands: %w", err)
			}
			slog.Info("island updated", "island", target.Name, "ratio", target.Ratio())
			return report.Plan(cmd.OutOrStdout(), static.Crew(), static.Allocate())
		},
	}
	cmd.Flags().Float64Var(&money, "money", 0, "new money")
	cmd.Flags().IntVar(&marines, "marines", 0, "new marines")
	cmd.MarkFlagRequired("money")
	cmd.MarkFlagRequired("marines")
	return cmd
}

func (a *app) voyageCmd() *cobra.Command {
	var (
		days     int
		pirates  int
		schedule []int
		quiet    bool
	)
	cmd := &cobra.Command{
		Use:   "voyage",
		Short: "Simulate days of raiding, rescoring islands against each day's crew",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vc := a.cfg.Voyage
			if cmd.Flags().Changed("days") {
				vc.Days = days
			}
			if cmd.Flags().Changed("pirates") {
				vc.Pirates = pirates
			}
			if len(schedule) > 0 {
				vc.CrewSchedule = schedule
			}
			if vc.Days < 0 || vc.Pirates < 0 {
				return fmt.Errorf("days and pirates must be non-negative")
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			islands, err := a.loadSea(ctx, db)
			if err != nil {
				return err
			}

			// ── Allocator ─────────────────────────────────────────────────
			raider := raid.NewDynamic(vc.Pirates)
			kept := raider.AddIslands(islands)
			slog.Info("islands worth raiding", "kept", kept, "of", len(islands), "pirates", raider.Pirates())

			voyage := engine.NewVoyage(uuid.NewString(), raider, vc.CrewSchedule)

			// ── Reinforcements ────────────────────────────────────────────
			seed := a.resolveSeed(ctx)
			rng := rand.New(rand.NewSource(seed + 500))
			namer := sea.NewNamer(a.cfg.Names, rng)
			for _, isl := range islands {
				namer.Reserve(isl.Name)
			}
			voyage.Reinforce = func(day uint64) []*island.Island {
				arriving := sea.Reinforcements(rng, vc.Reinforcements, namer)
				islands = append(islands, arriving...)
				return arriving
			}

			// ── Engine ────────────────────────────────────────────────────
			out := cmd.OutOrStdout()
			eng := engine.NewEngine()
			eng.Interval = vc.Interval
			eng.OnDay = func(day uint64) {
				rounds := voyage.TickDay(day)
				if !quiet {
					if err := report.Day(out, day, voyage.CrewFor(day), rounds); err != nil {
						slog.Warn("daily report failed", "day", day, "error", err)
					}
					fmt.Fprintln(out)
				}
				// Auto-save daily.
				if err := db.SaveVoyage(voyage, islands); err != nil {
					slog.Error("daily save failed", "error", err)
				}
			}
			eng.OnWeek = voyage.TickWeek

			eng.Run(ctx, vc.Days)

			// Final save picks up the last week's arrivals.
			if err := db.SaveVoyage(voyage, islands); err != nil {
				return fmt.Errorf("final save: %w", err)
			}
			return report.Summary(out, voyage.ID, voyage.Stats)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "days to simulate (defaults to voyage.days)")
	cmd.Flags().IntVar(&pirates, "pirates", 0, "pirate rounds per day (defaults to voyage.pirates)")
	cmd.Flags().IntSliceVar(&schedule, "crew", nil, "crew per round, one value per day, repeating (defaults to voyage.crew_schedule)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var (
		limit    int
		voyageID string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded raids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if voyageID == "" {
				raids, err := db.RecentRaids(limit)
				if err != nil {
					return err
				}
				return report.Raids(cmd.OutOrStdout(), raids)
			}

			raids, err := db.RaidsForVoyage(voyageID)
			if err != nil {
				return err
			}
			if err := report.Raids(cmd.OutOrStdout(), raids); err != nil {
				return err
			}
			stats, err := db.VoyageStats(voyageID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return report.Summary(cmd.OutOrStdout(), voyageID, stats)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of recent raids")
	cmd.Flags().StringVar(&voyageID, "voyage", "", "show one voyage in full")
	return cmd
}
