package achievements

import (
	"testing"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/stretchr/testify/assert"
)

func rec(topic curriculum.TopicID, d curriculum.Difficulty, completed bool, best, attempts int, avg float64) store.CompletionRecord {
	return store.CompletionRecord{
		UserID:                 "u1",
		TopicID:                topic,
		Difficulty:             d,
		IsCompleted:            completed,
		BestScorePercentage:    best,
		TotalAttempts:          attempts,
		AverageScorePercentage: avg,
	}
}

func TestComputeSnapshotEmpty(t *testing.T) {
	snap := ComputeSnapshot(nil, curriculum.Default())

	assert.Zero(t, snap.LessonsCompleted)
	assert.Zero(t, snap.AverageScore)
	assert.Zero(t, snap.MedalCount())
	assert.Equal(t, TierProgress{Completed: 0, Total: 2}, snap.Tiers[curriculum.Easy])
}

func TestComputeSnapshot(t *testing.T) {
	records := []store.CompletionRecord{
		rec("articles", curriculum.Easy, true, 90, 3, 80),
		rec("articles", curriculum.Medium, true, 75, 1, 75),
		rec("present-tenses", curriculum.Easy, true, 100, 1, 100),
		rec("prepositions", curriculum.Medium, false, 50, 4, 40),
	}
	records[0].TotalHintsUsed = 2
	records[3].TotalHintsUsed = 3
	records[0].TotalTimeSpentSeconds = 600
	records[2].TotalTimeSpentSeconds = 120

	snap := ComputeSnapshot(records, curriculum.Default())

	assert.Equal(t, 3, snap.LessonsCompleted)
	assert.Equal(t, 2, snap.TopicsCompleted, "articles counted once")
	assert.Equal(t, 9, snap.TotalAttempts)
	assert.Equal(t, 100, snap.BestScore)
	assert.Equal(t, 5, snap.HintsUsed)
	assert.Equal(t, 720, snap.TimeSpentSeconds)
	// (80*3 + 75*1 + 100*1 + 40*4) / 9
	assert.InDelta(t, 575.0/9.0, snap.AverageScore, 0.0001)

	assert.True(t, snap.Medals[curriculum.Easy])
	assert.False(t, snap.Medals[curriculum.Medium])
	assert.False(t, snap.Medals[curriculum.Hard])
	assert.Equal(t, TierProgress{Completed: 1, Total: 3}, snap.Tiers[curriculum.Medium])
}

func TestComputeSnapshotMedalNeedsMatchingTier(t *testing.T) {
	// Easy topics completed at medium do not earn the easy medal.
	records := []store.CompletionRecord{
		rec("articles", curriculum.Medium, true, 100, 1, 100),
		rec("present-tenses", curriculum.Medium, true, 100, 1, 100),
	}
	snap := ComputeSnapshot(records, curriculum.Default())
	assert.False(t, snap.Medals[curriculum.Easy])
}

func TestSnapshotValue(t *testing.T) {
	snap := Snapshot{LessonsCompleted: 1, BestScore: 95, TimeSpentSeconds: 30}

	for _, m := range AllMetrics() {
		_, ok := snap.Value(m)
		assert.True(t, ok, "metric %s", m)
	}
	v, _ := snap.Value(MetricBestScore)
	assert.Equal(t, 95.0, v)

	_, ok := snap.Value("streak")
	assert.False(t, ok)
}
