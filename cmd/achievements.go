package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/grammarquest/internal/achievements"
	"github.com/abhisek/grammarquest/internal/ui/components"
	"github.com/abhisek/grammarquest/internal/ui/theme"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Browse and manage achievements",
}

var achievementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List earned achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		summary, err := svc.achievements.Earned(cmd.Context(), userID(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(summary.Achievements) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No achievements yet."))
			return nil
		}
		for _, a := range summary.Achievements {
			printEarned(out, a)
		}
		fmt.Fprintf(out, "\n%d earned  %s\n", len(summary.Achievements),
			theme.Points.Render(fmt.Sprintf("%s / %s pts", humanize.Comma(int64(summary.TotalPoints)), humanize.Comma(int64(summary.MaxPoints)))))
		return nil
	},
}

var achievementsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate achievements now and award any that are due",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.achievements.EvaluateAndAward(cmd.Context(), userID(cmd), nil)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, a := range res.NewlyAwarded {
			fmt.Fprintf(out, "%s %s  %s\n", a.Icon, theme.Badge.Render(a.Name), theme.Points.Render(fmt.Sprintf("+%d pts", a.Points)))
		}
		fmt.Fprintf(out, "%d rules checked, %d newly awarded, %d already earned\n",
			res.TotalRulesChecked, len(res.NewlyAwarded), res.AlreadyEarnedCount)
		if len(res.Failed) > 0 {
			fmt.Fprintln(out, theme.Failed.Render("could not record: "+strings.Join(res.Failed, ", ")))
		}
		return nil
	},
}

var achievementsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show achievements not yet acknowledged",
	RunE: func(cmd *cobra.Command, args []string) error {
		ack, _ := cmd.Flags().GetBool("ack")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		user := userID(cmd)
		pending, err := svc.achievements.Pending(ctx, user)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(pending) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("Nothing new."))
			return nil
		}
		for _, a := range pending {
			printEarned(out, a)
		}
		if !ack {
			return nil
		}
		ids := lo.Map(pending, func(a achievements.EarnedAchievement, _ int) string { return a.ID })
		if _, err := svc.achievements.MarkNotified(ctx, user, ids...); err != nil {
			return err
		}
		return nil
	},
}

var achievementsAckCmd = &cobra.Command{
	Use:   "ack ID...",
	Short: "Mark achievements as seen",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := svc.achievements.MarkNotified(cmd.Context(), userID(cmd), args...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d acknowledged\n", n)
		return nil
	},
}

var achievementsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every achievement and what it takes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, _, catalog, err := loadStatic()
		if err != nil {
			return err
		}
		defer logger.Sync()

		out := cmd.OutOrStdout()
		groups := lo.GroupBy(catalog.Rules(), func(r achievements.Rule) achievements.Category { return r.Category })
		for _, c := range []achievements.Category{
			achievements.CategoryProgress,
			achievements.CategoryPerformance,
			achievements.CategoryPersistence,
			achievements.CategoryMastery,
			"",
		} {
			rules := groups[c]
			if len(rules) == 0 {
				continue
			}
			fmt.Fprintln(out, theme.Title.Render(c.DisplayName()))
			for _, r := range rules {
				fmt.Fprintf(out, "  %s %-22s %-26s %s\n", r.Icon, r.Name,
					theme.Hint.Render(r.Requirement.String()), theme.Points.Render(fmt.Sprintf("%d pts", r.Points)))
			}
		}
		fmt.Fprintf(out, "\n%d achievements, %s pts total\n", catalog.Len(), humanize.Comma(int64(catalog.MaxPoints())))
		return nil
	},
}

var achievementsProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show progress toward each achievement",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		progress, err := svc.achievements.Progress(cmd.Context(), userID(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range progress {
			name := p.Rule.Name
			if p.Earned {
				name = theme.Badge.Render(name)
			}
			bar := components.NewProgressBar("", p.Fraction(), true, 30).View()
			fmt.Fprintf(out, "%s %-24s %s  %s\n", p.Rule.Icon, name, bar,
				theme.Hint.Render(fmt.Sprintf("%g/%g", p.Current, p.Target)))
		}
		return nil
	},
}

func printEarned(w io.Writer, a achievements.EarnedAchievement) {
	fmt.Fprintf(w, "%s %s  %s  %s\n", a.Icon, theme.Badge.Render(a.Name),
		theme.Points.Render(fmt.Sprintf("%d pts", a.Points)), theme.Subtitle.Render(humanize.Time(a.EarnedAt)))
	if a.Description != "" {
		fmt.Fprintln(w, "   "+theme.Hint.Render(a.Description))
	}
}

func init() {
	achievementsPendingCmd.Flags().Bool("ack", false, "Mark the listed achievements as seen")

	achievementsCmd.AddCommand(achievementsListCmd)
	achievementsCmd.AddCommand(achievementsCheckCmd)
	achievementsCmd.AddCommand(achievementsPendingCmd)
	achievementsCmd.AddCommand(achievementsAckCmd)
	achievementsCmd.AddCommand(achievementsCatalogCmd)
	achievementsCmd.AddCommand(achievementsProgressCmd)
}
