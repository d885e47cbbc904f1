package cmd

import (
	"fmt"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/abhisek/grammarquest/internal/ui/components"
	"github.com/abhisek/grammarquest/internal/ui/theme"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show which difficulty tiers are unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		records, err := svc.progress.Records(cmd.Context(), userID(cmd))
		if err != nil {
			return err
		}
		unlocked := progress.UnlockedTiers(records, svc.curriculum)
		done := progress.CompletedSet(records)

		out := cmd.OutOrStdout()
		for _, d := range curriculum.AllDifficulties() {
			topics := svc.curriculum.ByTier(d)
			completed := lo.CountBy(topics, func(t curriculum.Topic) bool { return done.Has(t.ID, d) })

			state := theme.Locked.Render("🔒 locked")
			if lo.Contains(unlocked, d) {
				state = theme.Unlocked.Render("open")
			}
			var pct float64
			if len(topics) > 0 {
				pct = float64(completed) / float64(len(topics))
			}
			fmt.Fprintf(out, "%s %-7s %-18s %s\n", d.Icon(), d.DisplayName(), state,
				components.NewProgressBar(fmt.Sprintf("%d/%d", completed, len(topics)), pct, false, 28).View())
		}
		return nil
	},
}
