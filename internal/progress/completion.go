package progress

import (
	"github.com/abhisek/grammarquest/internal/store"
)

// DefaultCompletionThreshold is the best-score percentage at which a
// (topic, difficulty) cell counts as completed.
const DefaultCompletionThreshold = 70

// ApplyAttempt folds an attempt into the previous record for the same
// (user, topic, difficulty) cell and returns the updated record. prev may be
// nil for a first attempt; it is never modified.
//
// Once IsCompleted is true it stays true regardless of later scores.
// Returns a Transition if the attempt changed the cell's state, nil otherwise.
func ApplyAttempt(prev *store.CompletionRecord, a Attempt, threshold int) (store.CompletionRecord, *Transition) {
	var next store.CompletionRecord
	if prev != nil {
		next = *prev
	} else {
		next = store.CompletionRecord{
			UserID:     a.UserID,
			TopicID:    a.TopicID,
			Difficulty: a.Difficulty,
		}
	}
	from := StateOf(prev)

	pct := a.ScorePercentage()

	next.TotalAttempts++
	n := float64(next.TotalAttempts)
	next.AverageScorePercentage = (next.AverageScorePercentage*(n-1) + float64(pct)) / n
	if pct > next.BestScorePercentage {
		next.BestScorePercentage = pct
	}
	next.TotalTimeSpentSeconds += a.TimeSpentSeconds
	next.TotalHintsUsed += a.HintsUsed
	next.LastAttemptAt = a.At

	if !next.IsCompleted && next.BestScorePercentage >= threshold {
		at := a.At
		next.IsCompleted = true
		next.CompletedAt = &at
	}

	to := StateOf(&next)
	if from == to {
		return next, nil
	}

	trigger := "first-attempt"
	if to == StateCompleted {
		trigger = "threshold-reached"
	}
	return next, &Transition{
		TopicID:    next.TopicID,
		Difficulty: next.Difficulty,
		From:       from,
		To:         to,
		Trigger:    trigger,
	}
}
