package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/game"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/abhisek/grammarquest/internal/ui/theme"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit TOPIC",
	Short: "Record a scored attempt at a topic",
	Example: `  grammarquest submit articles --difficulty easy --score 8 --max 10
  grammarquest submit modal-verbs -d medium -s 7 --hints 2 --time 5m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		diffFlag, _ := cmd.Flags().GetString("difficulty")
		score, _ := cmd.Flags().GetInt("score")
		maxScore, _ := cmd.Flags().GetInt("max")
		hints, _ := cmd.Flags().GetInt("hints")
		spent, _ := cmd.Flags().GetDuration("time")

		d, err := curriculum.ParseDifficulty(diffFlag)
		if err != nil {
			return err
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.game.SubmitAttempt(cmd.Context(), progress.Attempt{
			UserID:           userID(cmd),
			TopicID:          curriculum.TopicID(args[0]),
			Difficulty:       d,
			Score:            score,
			MaxScore:         maxScore,
			TimeSpentSeconds: int(spent / time.Second),
			HintsUsed:        hints,
		})
		if errors.Is(err, game.ErrTierLocked) {
			prereq, _ := d.Prerequisite()
			return fmt.Errorf("%w: complete every %s topic first", err, prereq)
		}
		if err != nil {
			return err
		}

		printSubmitResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func printSubmitResult(w io.Writer, res *game.SubmitResult) {
	rec := res.Record
	status := theme.Locked.Render("in progress")
	if rec.IsCompleted {
		status = theme.Completed.Render("completed ✓")
	}
	fmt.Fprintf(w, "%s  %s %s  %s\n",
		theme.Title.Render(string(rec.TopicID)),
		rec.Difficulty.Icon(), rec.Difficulty.DisplayName(), status)
	fmt.Fprintf(w, "  score %d%%   best %d%%   average %.1f%%   attempts %d\n",
		res.ScorePercentage, rec.BestScorePercentage, rec.AverageScorePercentage, rec.TotalAttempts)

	for _, d := range res.NewlyUnlocked {
		fmt.Fprintln(w, theme.Unlocked.Render(fmt.Sprintf("🔓 %s tier unlocked!", d.DisplayName())))
	}
	for _, a := range res.Achievements.NewlyAwarded {
		body := fmt.Sprintf("%s %s  %s\n%s",
			a.Icon, theme.Badge.Render(a.Name), theme.Points.Render(fmt.Sprintf("+%d pts", a.Points)),
			theme.Hint.Render(a.Description))
		fmt.Fprintln(w, theme.Card.Render(body))
	}
	if res.AchievementsSkipped {
		fmt.Fprintln(w, theme.Warning.Render("achievements could not be checked; run `grammarquest achievements check` later"))
	}
}

func init() {
	submitCmd.Flags().StringP("difficulty", "d", string(curriculum.Easy), "Tier: easy, medium or hard")
	submitCmd.Flags().IntP("score", "s", 0, "Points scored")
	submitCmd.Flags().Int("max", 10, "Maximum possible points")
	submitCmd.Flags().Int("hints", 0, "Hints used")
	submitCmd.Flags().Duration("time", 0, "Time spent (e.g. 90s, 5m)")
}
