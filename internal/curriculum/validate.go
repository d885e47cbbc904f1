package curriculum

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the given topic set.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var errs []string

	idSet := make(map[TopicID]bool, len(topics))
	tierCount := make(map[Difficulty]int)

	for _, t := range topics {
		if t.ID == "" {
			errs = append(errs, "topic with empty ID")
			continue
		}
		if idSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		idSet[t.ID] = true

		if !t.Tier.Valid() {
			errs = append(errs, fmt.Sprintf("topic %q assigned to unknown tier %q", t.ID, t.Tier))
			continue
		}
		tierCount[t.Tier]++
	}

	// An empty tier would leave the next tier permanently locked.
	for _, d := range AllDifficulties() {
		if tierCount[d] == 0 {
			errs = append(errs, fmt.Sprintf("tier %q has no topics", d))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
