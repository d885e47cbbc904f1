package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete every completion record, attempt and achievement for the learner.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		user := userID(cmd)
		if !yes {
			return fmt.Errorf("this deletes all progress for %q; re-run with --yes to confirm", user)
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		if err := svc.progress.Reset(ctx, user); err != nil {
			return err
		}
		n, err := svc.achievements.Reset(ctx, user)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress reset for %s (%d achievements removed)\n", user, n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
