// Package main implements matchctl, an operator CLI that runs the matching
// engine against the configured store without going through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/app"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	store   string
	seed    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Shelter matching engine CLI",
		Long:          "matchctl scores animal and adopter pairs, lists ranked matches, derives personality tags and reports care task countdowns using the same store configuration as the API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.store, "store", "", "Store driver override: postgres, sqlite or memory")
	root.PersistentFlags().StringVar(&opts.seed, "seed", "", "YAML seed file applied before the command runs")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at the configured level instead of warnings only")

	root.AddCommand(
		newScoreCmd(opts),
		newMatchesCmd(opts),
		newTagsCmd(),
		newTasksCmd(opts),
		newStatsCmd(opts),
		newAnimalsCmd(opts),
		newAdoptersCmd(opts),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// engine is the wired set of services a command works with.
type engine struct {
	stores  *app.Stores
	matches usecase.MatchService
	catalog usecase.CatalogService
	tasks   usecase.TaskService
}

func (e *engine) Close() { e.stores.Close() }

// openEngine loads configuration, applies flag overrides, opens the store and
// seeds it when a seed file is set.
func openEngine(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	switch opts.store {
	case "":
	case config.StorePostgres, config.StoreSQLite, config.StoreMemory:
		cfg.StoreDriver = opts.store
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.store)
	}
	if opts.seed != "" {
		cfg.SeedFile = opts.seed
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = cfg.Level()
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	if cfg.SeedFile != "" {
		data, err := app.LoadSeed(cfg.SeedFile)
		if err != nil {
			stores.Close()
			return nil, fmt.Errorf("failed to load seed file %s: %w", cfg.SeedFile, err)
		}
		res, err := app.ApplySeed(ctx, stores, data)
		if err != nil {
			stores.Close()
			return nil, fmt.Errorf("failed to apply seed: %w", err)
		}
		slog.Info("seed applied", slog.Int("inserted", res.Inserted), slog.Int("skipped", res.Skipped))
	}
	return &engine{
		stores:  stores,
		matches: usecase.NewMatchService(stores.Animals, stores.Adopters),
		catalog: usecase.NewCatalogService(stores.Animals, stores.Adopters, stores.Tasks),
		tasks:   usecase.NewTaskService(stores.Tasks, stores.Animals, stores.Adopters),
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
