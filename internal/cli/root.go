// Package cli implements the GuildDay command-line interface using
// Cobra. Each subcommand maps to an operator task (serve, generate,
// invite, seed).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "guildday",
	Short: "GuildDay — daily activity scoring for field cohorts",
	Long: `GuildDay turns a cohort's daily field work into XP, ranks,
streaks, and quests. Members log steps, workouts, conversations, and
learning; the engine scores each day and keeps cumulative stats.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
