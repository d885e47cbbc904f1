package achievements

import (
	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/samber/lo"
)

// TierProgress counts completed topics within one tier.
type TierProgress struct {
	Completed int
	Total     int
}

// Snapshot is the aggregate view of a user's completion records that
// achievement rules are evaluated against.
type Snapshot struct {
	LessonsCompleted int
	TopicsCompleted  int
	TotalAttempts    int
	AverageScore     float64
	BestScore        int
	HintsUsed        int
	TimeSpentSeconds int

	// Medals is true for a tier once every topic of that tier has been
	// completed at that tier.
	Medals map[curriculum.Difficulty]bool
	Tiers  map[curriculum.Difficulty]TierProgress
}

// ComputeSnapshot aggregates completion records. Medal state comes from the
// same tier-completion check that gates unlocking.
func ComputeSnapshot(records []store.CompletionRecord, cur *curriculum.Map) Snapshot {
	s := Snapshot{
		Medals: make(map[curriculum.Difficulty]bool, 3),
		Tiers:  make(map[curriculum.Difficulty]TierProgress, 3),
	}

	var weighted float64
	for _, r := range records {
		if r.IsCompleted {
			s.LessonsCompleted++
		}
		s.TotalAttempts += r.TotalAttempts
		weighted += r.AverageScorePercentage * float64(r.TotalAttempts)
		s.BestScore = max(s.BestScore, r.BestScorePercentage)
		s.HintsUsed += r.TotalHintsUsed
		s.TimeSpentSeconds += r.TotalTimeSpentSeconds
	}
	if s.TotalAttempts > 0 {
		s.AverageScore = weighted / float64(s.TotalAttempts)
	}

	completed := lo.Filter(records, func(r store.CompletionRecord, _ int) bool { return r.IsCompleted })
	s.TopicsCompleted = len(lo.Uniq(lo.Map(completed, func(r store.CompletionRecord, _ int) curriculum.TopicID {
		return r.TopicID
	})))

	done := progress.CompletedSet(records)
	for _, d := range curriculum.AllDifficulties() {
		s.Medals[d] = cur.TierComplete(d, done)
		topics := cur.ByTier(d)
		s.Tiers[d] = TierProgress{
			Completed: lo.CountBy(topics, func(t curriculum.Topic) bool { return done.Has(t.ID, d) }),
			Total:     len(topics),
		}
	}
	return s
}

// Value returns the numeric value of a metric.
func (s Snapshot) Value(m Metric) (float64, bool) {
	switch m {
	case MetricLessonsCompleted:
		return float64(s.LessonsCompleted), true
	case MetricTopicsCompleted:
		return float64(s.TopicsCompleted), true
	case MetricBestScore:
		return float64(s.BestScore), true
	case MetricAverageScore:
		return s.AverageScore, true
	case MetricTotalAttempts:
		return float64(s.TotalAttempts), true
	case MetricHintsUsed:
		return float64(s.HintsUsed), true
	case MetricTimeSpent:
		return float64(s.TimeSpentSeconds), true
	default:
		return 0, false
	}
}

// MedalCount returns how many tier medals are held.
func (s Snapshot) MedalCount() int {
	return len(lo.PickBy(s.Medals, func(_ curriculum.Difficulty, v bool) bool { return v }))
}
