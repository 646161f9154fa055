package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"restaurant.GO/migrations"
)

var migrateTarget string

func newMigrator() (*migrate.Migrate, error) {
	var dir, path string
	switch migrateTarget {
	case "main":
		dir = "main"
		path = os.Getenv("DB_PATH")
		if path == "" {
			path = filepath.Join("data", "restaurant.db")
		}
	case "special":
		dir = "special"
		path = os.Getenv("SPECIAL_DB_PATH")
		if path == "" {
			path = filepath.Join("data", "special.db")
		}
	default:
		return nil, fmt.Errorf("unknown --db %q (main or special)", migrateTarget)
	}
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, err
		}
	}
	src, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	drv, err := migrations.WithInstance(db)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, "sqlite", drv)
}

var migrateUpCmd = &cobra.Command{
	Use:   "migrate:up",
	Short: "Apply pending schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Printf("Migrate setup failed: %v\n", err)
			os.Exit(1)
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			fmt.Printf("Migrate up failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Migrations applied (%s)\n", migrateTarget)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "migrate:down",
	Short: "Roll back the most recent migration",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Printf("Migrate setup failed: %v\n", err)
			os.Exit(1)
		}
		if err := m.Steps(-1); err != nil {
			fmt.Printf("Migrate down failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rolled back one migration (%s)\n", migrateTarget)
	},
}

func init() {
	for _, c := range []*cobra.Command{migrateUpCmd, migrateDownCmd} {
		c.Flags().StringVar(&migrateTarget, "db", "main", "Which database to migrate (main or special)")
		rootCmd.AddCommand(c)
	}
}
