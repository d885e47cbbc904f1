package curriculum

// Difficulty is one of the three ordered difficulty tiers.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns every tier in unlock order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty converts a string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", &UnknownDifficultyError{Value: s}
	}
	return d, nil
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	default:
		return false
	}
}

// Rank returns the zero-based position of d in unlock order, or -1.
func (d Difficulty) Rank() int {
	for i, t := range AllDifficulties() {
		if t == d {
			return i
		}
	}
	return -1
}

// Prerequisite returns the tier that must be fully completed before d
// unlocks. The second return value is false for easy, which is always open.
func (d Difficulty) Prerequisite() (Difficulty, bool) {
	switch d {
	case Medium:
		return Easy, true
	case Hard:
		return Medium, true
	default:
		return "", false
	}
}

// DisplayName returns a human-readable label for the tier.
func (d Difficulty) DisplayName() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// Icon returns the display icon for the tier.
func (d Difficulty) Icon() string {
	switch d {
	case Easy:
		return "🌱"
	case Medium:
		return "🌿"
	case Hard:
		return "🌳"
	default:
		return "?"
	}
}

// TopicID identifies a grammar topic, e.g. "present-tenses".
type TopicID string

// Topic is a single grammar topic assigned to exactly one tier.
type Topic struct {
	ID          TopicID
	Name        string
	Description string
	Tier        Difficulty
}

// Key addresses one (topic, difficulty) cell of a learner's progress.
type Key struct {
	Topic      TopicID
	Difficulty Difficulty
}

// CompletedSet holds the (topic, difficulty) pairs a learner has completed.
type CompletedSet map[Key]bool

// Has reports whether topic was completed at difficulty d.
func (c CompletedSet) Has(topic TopicID, d Difficulty) bool {
	return c[Key{Topic: topic, Difficulty: d}]
}
