package achievements

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/grammarquest/internal/curriculum"
)

// Metric names a numeric field of the statistics snapshot.
type Metric string

const (
	MetricLessonsCompleted Metric = "lessons_completed"
	MetricTopicsCompleted  Metric = "topics_completed"
	MetricBestScore        Metric = "score_threshold"
	MetricAverageScore     Metric = "average_score"
	MetricTotalAttempts    Metric = "total_attempts"
	MetricHintsUsed        Metric = "hints_used"
	MetricTimeSpent        Metric = "time_spent"
)

// AllMetrics returns every numeric metric.
func AllMetrics() []Metric {
	return []Metric{
		MetricLessonsCompleted,
		MetricTopicsCompleted,
		MetricBestScore,
		MetricAverageScore,
		MetricTotalAttempts,
		MetricHintsUsed,
		MetricTimeSpent,
	}
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	for _, known := range AllMetrics() {
		if m == known {
			return true
		}
	}
	return false
}

// Op is a numeric comparison operator.
type Op string

const (
	OpGTE Op = ">="
	OpGT  Op = ">"
	OpEQ  Op = "="
	OpLT  Op = "<"
	OpLTE Op = "<="
)

// Valid reports whether o is a known numeric operator.
func (o Op) Valid() bool {
	switch o {
	case OpGTE, OpGT, OpEQ, OpLT, OpLTE:
		return true
	default:
		return false
	}
}

// Compare applies the operator as "actual <op> target".
func (o Op) Compare(actual, target float64) bool {
	switch o {
	case OpGTE:
		return actual >= target
	case OpGT:
		return actual > target
	case OpEQ:
		return math.Abs(actual-target) < 1e-9
	case OpLT:
		return actual < target
	case OpLTE:
		return actual <= target
	default:
		return false
	}
}

// Requirement is the predicate an achievement rule checks. The set of
// implementations is closed: Threshold, MedalIncludes and AllMedals.
type Requirement interface {
	// Satisfied reports whether the snapshot meets the requirement.
	Satisfied(s Snapshot) bool
	// String renders the requirement, e.g. "total_attempts >= 10".
	String() string

	validate() error
}

// Threshold compares one snapshot metric against a number.
type Threshold struct {
	Metric Metric
	Op     Op
	Value  float64
}

func (t Threshold) Satisfied(s Snapshot) bool {
	v, ok := s.Value(t.Metric)
	if !ok {
		return false
	}
	return t.Op.Compare(v, t.Value)
}

func (t Threshold) String() string {
	return fmt.Sprintf("%s %s %g", t.Metric, t.Op, t.Value)
}

func (t Threshold) validate() error {
	if !t.Metric.Valid() {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown requirement type %q", t.Metric)}
	}
	if !t.Op.Valid() {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown operator %q for %s", t.Op, t.Metric)}
	}
	if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
		return &ConfigurationError{Reason: "threshold value must be finite"}
	}
	return nil
}

// MedalIncludes holds when the medal for Tier has been earned.
type MedalIncludes struct {
	Tier curriculum.Difficulty
}

func (m MedalIncludes) Satisfied(s Snapshot) bool {
	return s.Medals[m.Tier]
}

func (m MedalIncludes) String() string {
	return fmt.Sprintf("difficulty_medals includes %s", m.Tier)
}

func (m MedalIncludes) validate() error {
	if !m.Tier.Valid() {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown tier %q", m.Tier)}
	}
	return nil
}

// AllMedals holds when the medal of every listed tier has been earned.
type AllMedals struct {
	Tiers []curriculum.Difficulty
}

func (a AllMedals) Satisfied(s Snapshot) bool {
	if len(a.Tiers) == 0 {
		return false
	}
	for _, t := range a.Tiers {
		if !s.Medals[t] {
			return false
		}
	}
	return true
}

func (a AllMedals) String() string {
	names := make([]string, len(a.Tiers))
	for i, t := range a.Tiers {
		names[i] = string(t)
	}
	return fmt.Sprintf("difficulty_medals all_true [%s]", strings.Join(names, ", "))
}

func (a AllMedals) validate() error {
	if len(a.Tiers) == 0 {
		return &ConfigurationError{Reason: "all_true needs at least one tier"}
	}
	for _, t := range a.Tiers {
		if !t.Valid() {
			return &ConfigurationError{Reason: fmt.Sprintf("unknown tier %q", t)}
		}
	}
	return nil
}
