package progress

import (
	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/samber/lo"
)

// CompletedSet collects the completed (topic, difficulty) cells.
func CompletedSet(records []store.CompletionRecord) curriculum.CompletedSet {
	done := make(curriculum.CompletedSet, len(records))
	for _, r := range records {
		if r.IsCompleted {
			done[r.Key()] = true
		}
	}
	return done
}

// UnlockedTiers returns the accessible tiers in unlock order. Easy is always
// present; medium requires every easy topic completed at easy, hard requires
// every medium topic completed at medium.
func UnlockedTiers(records []store.CompletionRecord, cur *curriculum.Map) []curriculum.Difficulty {
	done := CompletedSet(records)
	return lo.Filter(curriculum.AllDifficulties(), func(d curriculum.Difficulty, _ int) bool {
		return cur.IsUnlocked(d, done)
	})
}

// NewlyUnlocked returns the tiers in after that were not in before.
func NewlyUnlocked(before, after []curriculum.Difficulty) []curriculum.Difficulty {
	return lo.Without(after, before...)
}
