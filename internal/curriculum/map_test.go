package curriculum

import (
	"strings"
	"testing"
)

func testTopics() []Topic {
	return []Topic{
		{ID: "a", Name: "A", Tier: Easy},
		{ID: "b", Name: "B", Tier: Easy},
		{ID: "c", Name: "C", Tier: Medium},
		{ID: "d", Name: "D", Tier: Hard},
	}
}

func TestDefault_Topics(t *testing.T) {
	m := Default()

	tests := []struct {
		tier Difficulty
		want []TopicID
	}{
		{Easy, []TopicID{"present-tenses", "articles"}},
		{Medium, []TopicID{"past-tenses", "prepositions", "modal-verbs"}},
		{Hard, []TopicID{"conditionals"}},
	}
	for _, tt := range tests {
		got := m.ByTier(tt.tier)
		if len(got) != len(tt.want) {
			t.Fatalf("ByTier(%q): got %d topics, want %d", tt.tier, len(got), len(tt.want))
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("ByTier(%q)[%d] = %q, want %q", tt.tier, i, got[i].ID, id)
			}
		}
	}

	if n := len(m.Topics()); n != 6 {
		t.Errorf("Topics(): got %d, want 6", n)
	}
}

func TestTopic_NotFound(t *testing.T) {
	_, err := Default().Topic("gerunds")
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
}

func TestTierComplete(t *testing.T) {
	m, err := New(testTopics())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name      string
		completed CompletedSet
		tier      Difficulty
		want      bool
	}{
		{"nothing done", CompletedSet{}, Easy, false},
		{"one of two", CompletedSet{{"a", Easy}: true}, Easy, false},
		{"both", CompletedSet{{"a", Easy}: true, {"b", Easy}: true}, Easy, true},
		{"wrong difficulty", CompletedSet{{"a", Medium}: true, {"b", Medium}: true}, Easy, false},
		{"medium single topic", CompletedSet{{"c", Medium}: true}, Medium, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TierComplete(tt.tier, tt.completed); got != tt.want {
				t.Errorf("TierComplete(%q) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestTierComplete_EmptyTierIsNotVacuouslyTrue(t *testing.T) {
	// Bypass validation to exercise the empty-tier guard directly.
	m := buildMap([]Topic{{ID: "a", Tier: Easy}})
	if m.TierComplete(Medium, CompletedSet{}) {
		t.Error("empty tier must not count as complete")
	}
	if m.IsUnlocked(Hard, CompletedSet{{"a", Easy}: true}) {
		t.Error("hard must stay locked when medium has no topics")
	}
}

func TestIsUnlocked(t *testing.T) {
	m, err := New(testTopics())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	easyDone := CompletedSet{{"a", Easy}: true, {"b", Easy}: true}

	if !m.IsUnlocked(Easy, CompletedSet{}) {
		t.Error("easy must always be unlocked")
	}
	if m.IsUnlocked(Medium, CompletedSet{{"a", Easy}: true}) {
		t.Error("medium unlocked with half of easy done")
	}
	if !m.IsUnlocked(Medium, easyDone) {
		t.Error("medium should unlock once easy is complete")
	}
	if m.IsUnlocked(Hard, easyDone) {
		t.Error("hard unlocked without medium")
	}
	if m.IsUnlocked(Difficulty("expert"), easyDone) {
		t.Error("unknown tier must never unlock")
	}
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		topics  []Topic
		wantErr string
	}{
		{
			name:    "duplicate id",
			topics:  append(testTopics(), Topic{ID: "a", Tier: Hard}),
			wantErr: `duplicate topic ID: "a"`,
		},
		{
			name:    "unknown tier",
			topics:  append(testTopics(), Topic{ID: "x", Tier: "expert"}),
			wantErr: `unknown tier "expert"`,
		},
		{
			name:    "empty tier",
			topics:  []Topic{{ID: "a", Tier: Easy}, {ID: "d", Tier: Hard}},
			wantErr: `tier "medium" has no topics`,
		},
		{
			name:    "empty id",
			topics:  append(testTopics(), Topic{Tier: Easy}),
			wantErr: "topic with empty ID",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.topics)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard"} {
		if _, err := ParseDifficulty(s); err != nil {
			t.Errorf("ParseDifficulty(%q): %v", s, err)
		}
	}
	if _, err := ParseDifficulty("EASY"); err == nil {
		t.Error("expected error for upper-case tier")
	}
}

func TestPrerequisite(t *testing.T) {
	if _, ok := Easy.Prerequisite(); ok {
		t.Error("easy should have no prerequisite")
	}
	if p, _ := Medium.Prerequisite(); p != Easy {
		t.Errorf("medium prerequisite = %q, want easy", p)
	}
	if p, _ := Hard.Prerequisite(); p != Medium {
		t.Errorf("hard prerequisite = %q, want medium", p)
	}
}
