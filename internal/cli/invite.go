package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/guildday/guildday/internal/app/cohort"
	"github.com/guildday/guildday/internal/daemon"
	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

func init() {
	inviteCmd.Flags().Int64Var(&inviteCohort, "cohort", 0, "Cohort ID (required)")
	inviteCmd.Flags().StringVar(&inviteRole, "role", "agent", "Role granted on join (agent, coach, admin)")
	inviteCmd.Flags().IntVar(&inviteMaxUses, "max-uses", 1, "How many members may redeem the code")
	inviteCmd.Flags().IntVar(&inviteTTLHours, "ttl-hours", 0, "Hours until expiry (0 = never)")
	inviteCmd.MarkFlagRequired("cohort")
	rootCmd.AddCommand(inviteCmd)
}

var (
	inviteCohort   int64
	inviteRole     string
	inviteMaxUses  int
	inviteTTLHours int
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Mint an invite code for a cohort",
	RunE:  runInvite,
}

func runInvite(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(daemon.GuilddayHome())
	if err != nil {
		return err
	}
	defer db.Close()

	invite, err := cohort.New(db).CreateInvite(inviteCohort,
		domain.MemberRole(inviteRole), inviteMaxUses,
		time.Duration(inviteTTLHours)*time.Hour)
	if err != nil {
		return err
	}

	fmt.Printf("Invite code: %s\n", invite.Code)
	fmt.Printf("  Role:     %s\n", invite.Role)
	fmt.Printf("  Max uses: %d\n", invite.MaxUses)
	if invite.ExpiresAt.IsZero() {
		fmt.Println("  Expires:  never")
	} else {
		fmt.Printf("  Expires:  %s\n", invite.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
