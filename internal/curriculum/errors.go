package curriculum

import "fmt"

// UnknownDifficultyError is returned when a string does not name a tier.
type UnknownDifficultyError struct {
	Value string
}

func (e *UnknownDifficultyError) Error() string {
	return fmt.Sprintf("unknown difficulty %q (want easy, medium or hard)", e.Value)
}

// UnknownTopicError is returned when a topic is not part of the curriculum.
type UnknownTopicError struct {
	Topic TopicID
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("topic not found: %q", string(e.Topic))
}
