package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies every pending migration for the dialect behind gdb.
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch gdb.Dialector.Name() {
	case "postgres":
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	case "sqlite":
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for dialect %q", gdb.Dialector.Name())
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.WithFields(log.Fields{
			"version":  r.Source.Version,
			"duration": r.Duration.String(),
		}).Info("migration applied")
	}
	return nil
}
