package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/denwilliams/slack-retro/core/config"
	"github.com/denwilliams/slack-retro/core/db"
)

func openDatabase(ctx context.Context) (*db.DB, error) {
	database, err := db.New(ctx, config.LoadDatabase())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return database, nil
}

// InitDBCmd creates the schema. Safe to re-run.
func InitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create tables and indexes (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.InitSchema(ctx); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Database initialized successfully")
			return nil
		},
	}
}

// DBHealthCmd reports which tables exist and exits non-zero if any are missing.
func DBHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db-health",
		Short: "Check that every table exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if !renderTableReport(cmd.OutOrStdout(), db.Tables, database.CheckTables(ctx)) {
				cmd.SilenceUsage = true
				return fmt.Errorf("some tables are missing - run 'retroctl init-db' to initialize")
			}
			return nil
		},
	}
}

// renderTableReport prints one line per table in the given order and reports whether all exist.
func renderTableReport(w io.Writer, order []string, tables map[string]bool) bool {
	ok := color.New(color.FgGreen)
	missing := color.New(color.FgRed)

	allExist := true
	for _, table := range order {
		if tables[table] {
			ok.Fprintf(w, "  ✓ %s\n", table)
			continue
		}
		allExist = false
		missing.Fprintf(w, "  ✗ %s\n", table)
	}

	if allExist {
		fmt.Fprintln(w, "All tables exist")
	}
	return allExist
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
