package achievements

import (
	"errors"
	"fmt"

	"github.com/abhisek/grammarquest/internal/store"
)

// ConfigurationError describes a rule that cannot be evaluated: an unknown
// requirement type or operator, or a value of the wrong shape. Such rules
// are reported and left out of the catalog; they never match.
type ConfigurationError struct {
	RuleID string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("invalid achievement rule: %s", e.Reason)
	}
	return fmt.Sprintf("invalid achievement rule %q: %s", e.RuleID, e.Reason)
}

// DuplicateAwardError reports that the user already holds the achievement.
// It is benign: the award is a no-op.
type DuplicateAwardError struct {
	UserID        string
	AchievementID string
}

func (e *DuplicateAwardError) Error() string {
	return fmt.Sprintf("achievement %q already earned by %s", e.AchievementID, e.UserID)
}

// asUnavailable makes sure a read failure carries a DataUnavailableError so
// callers can match on it regardless of where it came from.
func asUnavailable(op string, err error) error {
	var dataErr *store.DataUnavailableError
	if errors.As(err, &dataErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &store.DataUnavailableError{Op: op, Err: err}
}
