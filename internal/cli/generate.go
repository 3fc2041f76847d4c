package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guildday/guildday/internal/app/questgen"
	"github.com/guildday/guildday/internal/daemon"
	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

func init() {
	generateCmd.Flags().StringVar(&generateDate, "date", "", "Quest date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(generateCmd)
}

var generateDate string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's daily quests",
	Long: `Instantiate daily quests from every active cohort's templates.
Safe to run more than once: existing instances are left untouched.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(daemon.GuilddayHome())
	if err != nil {
		return err
	}
	defer db.Close()

	date := generateDate
	if date == "" {
		date = domain.Today()
	}

	n, err := questgen.New(db).GenerateDaily(date)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d quest instances for %s\n", n, date)
	return nil
}
