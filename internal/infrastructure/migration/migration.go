// Package migration applies the versioned database schema with goose.
package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/shared/logger"
)

// Manager runs schema migrations against one database.
type Manager struct {
	provider *goose.Provider
	logger   logger.Interface
}

// MigrationStatus is one row of the migrate status report.
type MigrationStatus struct {
	Version   int64
	Applied   bool
	AppliedAt string
}

// NewManager builds a goose provider for db's dialect.
func NewManager(db *gorm.DB, log logger.Interface) (*Manager, error) {
	dialect, err := dialectOf(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, nil,
		goose.WithGoMigrations(goMigrations(db)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &Manager{
		provider: provider,
		logger:   log.With("component", "migration.goose"),
	}, nil
}

func dialectOf(db *gorm.DB) (goose.Dialect, error) {
	switch name := db.Dialector.Name(); name {
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite", "sqlite3":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported database dialect %q", name)
	}
}

// Up applies every pending migration.
func (m *Manager) Up(ctx context.Context) error {
	from, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Infow("starting goose migration", "from_version", from)

	results, err := m.provider.Up(ctx)
	if err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		m.logger.Infow("migration applied",
			"version", r.Source.Version,
			"duration", r.Duration)
	}

	to, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Infow("migration completed successfully",
		"from_version", from,
		"to_version", to)
	return nil
}

// Down rolls back the given number of applied migrations.
func (m *Manager) Down(ctx context.Context, steps int) error {
	m.logger.Infow("starting down migration", "steps", steps)

	for i := 0; i < steps; i++ {
		if _, err := m.provider.Down(ctx); err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				break
			}
			m.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	m.logger.Infow("down migration completed successfully")
	return nil
}

// Version returns the current schema version, 0 when nothing is applied.
func (m *Manager) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

// Status reports every known migration and whether it is applied.
func (m *Manager) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		row := MigrationStatus{
			Version: s.Source.Version,
			Applied: s.State == goose.StateApplied,
		}
		if row.Applied {
			row.AppliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		out = append(out, row)
	}
	return out, nil
}
