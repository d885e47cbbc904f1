package curriculum

import (
	"slices"
	"sort"
)

// Map is the immutable topic→tier assignment shared by unlock and medal
// logic. Build one with New, Parse or Load and pass it to the services that
// need it.
type Map struct {
	topics []Topic
	byID   map[TopicID]*Topic
	byTier map[Difficulty][]Topic
}

// New validates topics and builds a Map from them.
func New(topics []Topic) (*Map, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}
	return buildMap(topics), nil
}

// buildMap constructs the indices. Topics keep their declared order within
// a tier; the overall list is ordered by tier rank first.
func buildMap(topics []Topic) *Map {
	m := &Map{
		topics: slices.Clone(topics),
		byID:   make(map[TopicID]*Topic, len(topics)),
		byTier: make(map[Difficulty][]Topic),
	}

	sort.SliceStable(m.topics, func(i, j int) bool {
		return m.topics[i].Tier.Rank() < m.topics[j].Tier.Rank()
	})

	for i := range m.topics {
		t := &m.topics[i]
		m.byID[t.ID] = t
		m.byTier[t.Tier] = append(m.byTier[t.Tier], *t)
	}
	return m
}

// Topic returns a topic by ID.
func (m *Map) Topic(id TopicID) (Topic, error) {
	t, ok := m.byID[id]
	if !ok {
		return Topic{}, &UnknownTopicError{Topic: id}
	}
	return *t, nil
}

// Has reports whether id is part of the curriculum.
func (m *Map) Has(id TopicID) bool {
	_, ok := m.byID[id]
	return ok
}

// Topics returns every topic ordered by tier.
func (m *Map) Topics() []Topic {
	return slices.Clone(m.topics)
}

// ByTier returns the topics assigned to tier d.
func (m *Map) ByTier(d Difficulty) []Topic {
	return slices.Clone(m.byTier[d])
}

// TierComplete reports whether every topic assigned to tier d has been
// completed at difficulty d. A tier with no topics is never complete.
func (m *Map) TierComplete(d Difficulty, completed CompletedSet) bool {
	topics := m.byTier[d]
	if len(topics) == 0 {
		return false
	}
	for _, t := range topics {
		if !completed.Has(t.ID, d) {
			return false
		}
	}
	return true
}

// IsUnlocked reports whether tier d is open given the completed set.
// Easy is always open; every other tier requires its prerequisite tier
// to be complete.
func (m *Map) IsUnlocked(d Difficulty, completed CompletedSet) bool {
	prereq, ok := d.Prerequisite()
	if !ok {
		return d == Easy
	}
	return m.TierComplete(prereq, completed)
}
