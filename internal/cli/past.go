package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/store"
)

const pastRetrosLimit = 20

// PastCmd prints the stored summaries of a team's finished retros, newest first.
func PastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "past",
		Short: "Print summaries of finished retros",
		Long: `Print the summaries of a team's finished retrospectives, newest first.

Usage:
  retroctl past --team T0123456
  retroctl past --team T0123456 --limit 5`,
		RunE: runPast,
	}

	cmd.Flags().String("team", "", "Slack team (workspace) ID")
	cmd.Flags().Int32("limit", pastRetrosLimit, "Maximum number of retros to print")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func runPast(cmd *cobra.Command, args []string) error {
	teamID, _ := cmd.Flags().GetString("team")
	limit, _ := cmd.Flags().GetInt32("limit")
	ctx := cmd.Context()

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	retros, err := store.NewStores(database.Queries()).Retrospectives().ListFinished(ctx, teamID, limit)
	if err != nil {
		return fmt.Errorf("listing finished retros: %w", err)
	}

	renderPastRetros(cmd.OutOrStdout(), retros)
	return nil
}

func renderPastRetros(w io.Writer, retros []model.Retrospective) {
	heading := color.New(color.FgHiCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	shown := 0
	for _, retro := range retros {
		finished, ok := retro.Finished()
		if !ok {
			continue
		}
		if shown > 0 {
			dim.Fprintln(w, strings.Repeat("─", 40))
		}
		heading.Fprintf(w, "%s  (retro %d)\n", finished.FinishedAt.Format("2006-01-02 15:04"), retro.ID)
		fmt.Fprintln(w, finished.Summary)
		shown++
	}

	if shown == 0 {
		dim.Fprintln(w, "No past retros yet")
	}
}
