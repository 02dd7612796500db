// Package repository selects and wires a storage backend from
// configuration. Both backends store the same whole-year documents, so the
// rest of the application never knows which one it is talking to.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/planvida/planvida-backend/internal/config"
	"github.com/planvida/planvida-backend/internal/domain"
	"github.com/planvida/planvida-backend/internal/repository/postgres"
	"github.com/planvida/planvida-backend/internal/repository/sqlite"
)

// Repositories bundles the per-aggregate repositories of one backend
type Repositories struct {
	YearPlans domain.YearPlanRepository
	Finances  domain.FinanceRepository
	Close     func()
}

// New runs migrations and returns repositories for the configured backend
func New(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Backend {
	case "postgres":
		return newPostgres(ctx, cfg)
	case "sqlite":
		return newSQLite(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newPostgres(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info().Msg("Using postgres storage backend")
	return &Repositories{
		YearPlans: postgres.NewYearPlanRepository(pool),
		Finances:  postgres.NewFinanceRepository(pool),
		Close:     pool.Close,
	}, nil
}

func newSQLite(cfg *config.Config) (*Repositories, error) {
	if err := sqlite.RunMigrations(cfg.SQLitePath); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", cfg.SQLitePath).Msg("Using sqlite storage backend")
	return &Repositories{
		YearPlans: sqlite.NewYearPlanRepository(db),
		Finances:  sqlite.NewFinanceRepository(db),
		Close:     func() { _ = db.Close() },
	}, nil
}
