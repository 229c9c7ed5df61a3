// Command plunder plans and simulates pirate raids across a generated sea.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/plunder/internal/config"
	"github.com/talgya/plunder/internal/entropy"
	"github.com/talgya/plunder/internal/island"
	"github.com/talgya/plunder/internal/persistence"
	"github.com/talgya/plunder/internal/sea"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	configPath string
	dbPath     string
	seed       int64
	logLevel   string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "plunder",
		Short:         "Allocate a pirate crew across a sea of islands",
		Long:          `plunder charts a sea of islands, plans ratio-ordered raids for a fixed crew, and simulates day-by-day voyages that rescore every island against the day's crew.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "plunder.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "generation seed (overrides config; 0 keeps config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		a.generateCmd(),
		a.planCmd(),
		a.lootCmd(),
		a.updateCmd(),
		a.voyageCmd(),
		a.historyCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.seed != 0 {
		cfg.Seed = a.seed
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return nil
}

// openDB opens the configured database, creating its directory.
func (a *app) openDB() (*persistence.DB, error) {
	if dir := filepath.Dir(a.cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("database opened", "path", a.cfg.DBPath)
	return db, nil
}

// resolveSeed returns the configured seed, drawing one from entropy when
// the configuration leaves it at zero.
func (a *app) resolveSeed(ctx context.Context) int64 {
	if a.cfg.Seed != 0 {
		return a.cfg.Seed
	}
	seed := entropy.Seed(ctx, entropy.NewClient(a.cfg.RandomOrgKey))
	slog.Info("drew generation seed", "seed", seed)
	return seed
}

// chart generates a fresh sea from the configuration.
func (a *app) chart(ctx context.Context) *sea.Chart {
	gen := a.cfg.Sea
	gen.Seed = a.resolveSeed(ctx)
	chart := sea.Generate(gen, a.cfg.Names)
	slog.Info("sea charted", "seed", chart.Seed, "radius", chart.Radius, "islands", len(chart.Sites))
	return chart
}

// loadSea returns the saved sea, charting and saving a new one if the
// database is empty.
func (a *app) loadSea(ctx context.Context, db *persistence.DB) ([]*island.Island, error) {
	if db.HasIslands() {
		islands, err := db.LoadIslands()
		if err != nil {
			return nil, fmt.Errorf("load islands: %w", err)
		}
		slog.Info("sea loaded", "islands", len(islands))
		return islands, nil
	}

	slog.Info("no saved sea found, charting a new one...")
	islands := a.chart(ctx).Islands()
	if err := db.SaveIslands(islands); err != nil {
		return nil, fmt.Errorf("save islands: %w", err)
	}
	return islands, nil
}
