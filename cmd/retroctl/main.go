package main

import (
	"github.com/spf13/cobra"

	"github.com/denwilliams/slack-retro/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "retroctl",
		Short: "Admin tooling for the retro bot",
		Long: `retroctl manages the retro bot's database without going through the HTTP admin routes.
It reads DATABASE_URL (and .env in development) like the server does.`,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.InitDBCmd())
	rootCmd.AddCommand(cli.DBHealthCmd())
	rootCmd.AddCommand(cli.PastCmd())

	cli.ExitOnError(rootCmd.Execute())
}
