package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/repo/memory"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/repo/sqlite"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// Stores bundles the repositories of the configured STORE_DRIVER.
type Stores struct {
	Driver   string
	Animals  domain.AnimalRepository
	Adopters domain.AdopterRepository
	Tasks    domain.TaskRepository
	// DB is nil for the memory driver.
	DB Pinger
	// Pool is only set for the postgres driver.
	Pool    *pgxpool.Pool
	closers []func()
}

// OpenStores connects the configured store and makes sure its schema exists.
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	s := &Stores{Driver: cfg.StoreDriver}
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("op=app.OpenStores: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("op=app.OpenStores: %w", err)
		}
		s.Animals = postgres.NewAnimalRepo(pool)
		s.Adopters = postgres.NewAdopterRepo(pool)
		s.Tasks = postgres.NewTaskRepo(pool)
		s.DB, s.Pool = pool, pool
		s.closers = append(s.closers, pool.Close)
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("op=app.OpenStores: %w", err)
		}
		s.Animals, s.Adopters, s.Tasks = db.Animals(), db.Adopters(), db.Tasks()
		s.DB = db
		s.closers = append(s.closers, func() { _ = db.Close() })
	default:
		mem := memory.NewStore()
		s.Animals, s.Adopters, s.Tasks = mem.Animals(), mem.Adopters(), mem.Tasks()
	}
	slog.Info("store opened", slog.String("driver", s.Driver))
	return s, nil
}

// Close releases the underlying connections.
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
