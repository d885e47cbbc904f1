package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/ui/theme"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List grammar topics (optionally filtered by tier)",
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, _ := cmd.Flags().GetString("tier")

		_, logger, cur, _, err := loadStatic()
		if err != nil {
			return err
		}
		defer logger.Sync()

		topics := cur.Topics()
		if tier != "" {
			d, err := curriculum.ParseDifficulty(tier)
			if err != nil {
				return err
			}
			topics = cur.ByTier(d)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.TableHeader.Render(fmt.Sprintf("%-20s  %-28s  %-8s  %s", "ID", "Name", "Tier", "Description")))
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, t := range topics {
			name := t.Name
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Fprintf(out, "%-20s  %-28s  %-8s  %s\n", t.ID, name, t.Tier, theme.Hint.Render(t.Description))
		}

		fmt.Fprintf(out, "\n%d topics\n", len(topics))
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("tier", "", "Filter by tier (easy, medium or hard)")
}
