package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/grammarquest/internal/store"
	"github.com/abhisek/grammarquest/internal/ui/theme"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		user := userID(cmd)
		out := cmd.OutOrStdout()

		records, err := svc.progress.Records(ctx, user)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No attempts yet. Try `grammarquest submit articles --score 8`."))
			return nil
		}
		slices.SortFunc(records, func(a, b store.CompletionRecord) int {
			if c := a.Difficulty.Rank() - b.Difficulty.Rank(); c != 0 {
				return c
			}
			return strings.Compare(string(a.TopicID), string(b.TopicID))
		})

		fmt.Fprintln(out, theme.TableHeader.Render(fmt.Sprintf("%-18s  %-7s  %5s  %7s  %8s  %5s  %-10s  %s",
			"Topic", "Tier", "Best", "Average", "Attempts", "Hints", "Time", "Last attempt")))
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, r := range records {
			mark := " "
			if r.IsCompleted {
				mark = theme.Completed.Render("✓")
			}
			fmt.Fprintf(out, "%-18s  %-7s  %4d%%  %6.1f%%  %8s  %5d  %-10s  %s %s\n",
				r.TopicID, r.Difficulty, r.BestScorePercentage, r.AverageScorePercentage,
				humanize.Comma(int64(r.TotalAttempts)), r.TotalHintsUsed,
				(time.Duration(r.TotalTimeSpentSeconds) * time.Second).String(),
				humanize.Time(r.LastAttemptAt), mark)
		}

		snap, err := svc.achievements.Snapshot(ctx, user)
		if err != nil {
			return err
		}
		summary, err := svc.achievements.Earned(ctx, user)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Lessons completed: %d   Topics completed: %d   Medals: %d\n",
			snap.LessonsCompleted, snap.TopicsCompleted, snap.MedalCount())
		fmt.Fprintf(out, "Attempts: %s   Average: %.1f%%   Best: %d%%   Hints: %d\n",
			humanize.Comma(int64(snap.TotalAttempts)), snap.AverageScore, snap.BestScore, snap.HintsUsed)
		fmt.Fprintf(out, "Achievements: %d   %s\n", len(summary.Achievements),
			theme.Points.Render(fmt.Sprintf("%s / %s pts", humanize.Comma(int64(summary.TotalPoints)), humanize.Comma(int64(summary.MaxPoints)))))

		if recent <= 0 {
			return nil
		}
		attempts, err := svc.progress.Attempts(ctx, user, recent)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("Recent attempts"))
		for _, a := range attempts {
			fmt.Fprintf(out, "  %-14s %-18s %-7s %3d%%  (%d/%d)\n",
				humanize.Time(a.CreatedAt), a.TopicID, a.Difficulty, a.ScorePercentage, a.Score, a.MaxScore)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent attempts to show (0 to hide)")
}
