package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/grammarquest/internal/curriculum"
)

// ErrInvalidAttempt is wrapped by every attempt validation failure.
var ErrInvalidAttempt = errors.New("invalid attempt")

// Attempt is one completed exercise round submitted by a learner.
type Attempt struct {
	UserID           string
	TopicID          curriculum.TopicID
	Difficulty       curriculum.Difficulty
	Score            int
	MaxScore         int
	TimeSpentSeconds int
	HintsUsed        int
	At               time.Time // zero means now
}

// ScorePercentage returns the score as a whole percentage, rounded to the
// nearest integer.
func (a Attempt) ScorePercentage() int {
	if a.MaxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(a.Score) * 100 / float64(a.MaxScore)))
}

// Validate checks the attempt against the curriculum.
func (a Attempt) Validate(cur *curriculum.Map) error {
	switch {
	case a.UserID == "":
		return fmt.Errorf("%w: user ID is required", ErrInvalidAttempt)
	case !a.Difficulty.Valid():
		return fmt.Errorf("%w: %v", ErrInvalidAttempt, &curriculum.UnknownDifficultyError{Value: string(a.Difficulty)})
	case !cur.Has(a.TopicID):
		return fmt.Errorf("%w: %v", ErrInvalidAttempt, &curriculum.UnknownTopicError{Topic: a.TopicID})
	case a.MaxScore <= 0:
		return fmt.Errorf("%w: max score must be > 0, got %d", ErrInvalidAttempt, a.MaxScore)
	case a.Score < 0 || a.Score > a.MaxScore:
		return fmt.Errorf("%w: score %d outside [0, %d]", ErrInvalidAttempt, a.Score, a.MaxScore)
	case a.TimeSpentSeconds < 0:
		return fmt.Errorf("%w: time spent must be >= 0, got %d", ErrInvalidAttempt, a.TimeSpentSeconds)
	case a.HintsUsed < 0:
		return fmt.Errorf("%w: hints used must be >= 0, got %d", ErrInvalidAttempt, a.HintsUsed)
	}
	return nil
}
