package progress

import (
	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/store"
)

// State is a (topic, difficulty) cell's position in the completion lifecycle.
type State string

const (
	StateNew        State = "new"
	StateInProgress State = "in-progress"
	StateCompleted  State = "completed"
)

// StateOf returns the lifecycle state of a record. A nil record is new.
func StateOf(rec *store.CompletionRecord) State {
	switch {
	case rec == nil || rec.TotalAttempts == 0:
		return StateNew
	case rec.IsCompleted:
		return StateCompleted
	default:
		return StateInProgress
	}
}

// Transition records a completion state change for display and logging.
type Transition struct {
	TopicID    curriculum.TopicID
	Difficulty curriculum.Difficulty
	From       State
	To         State
	Trigger    string // "first-attempt", "threshold-reached"
}
