package store

import (
	"time"

	"github.com/abhisek/grammarquest/internal/curriculum"
)

// CompletionRecord is the best-known outcome for one
// (user, topic, difficulty) triple. Exactly one row exists per triple.
type CompletionRecord struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	UserID     string                `gorm:"not null;uniqueIndex:idx_completion_key,priority:1"`
	TopicID    curriculum.TopicID    `gorm:"not null;uniqueIndex:idx_completion_key,priority:2"`
	Difficulty curriculum.Difficulty `gorm:"not null;uniqueIndex:idx_completion_key,priority:3"`

	IsCompleted            bool `gorm:"not null;default:false"`
	BestScorePercentage    int  `gorm:"not null;default:0"`
	TotalAttempts          int  `gorm:"not null;default:0"`
	AverageScorePercentage float64
	TotalTimeSpentSeconds  int `gorm:"not null;default:0"`
	TotalHintsUsed         int `gorm:"not null;default:0"`

	CompletedAt   *time.Time
	LastAttemptAt time.Time
}

// Key returns the (topic, difficulty) cell this record describes.
func (r CompletionRecord) Key() curriculum.Key {
	return curriculum.Key{Topic: r.TopicID, Difficulty: r.Difficulty}
}

// AttemptEvent is one scored attempt. Append-only.
type AttemptEvent struct {
	ID        string    `gorm:"primaryKey;size:36"`
	CreatedAt time.Time `gorm:"index"`

	UserID     string                `gorm:"not null;index"`
	TopicID    curriculum.TopicID    `gorm:"not null"`
	Difficulty curriculum.Difficulty `gorm:"not null"`

	Score            int `gorm:"not null"`
	MaxScore         int `gorm:"not null"`
	ScorePercentage  int `gorm:"not null"`
	TimeSpentSeconds int `gorm:"not null;default:0"`
	HintsUsed        int `gorm:"not null;default:0"`
}

// AwardedAchievement records that a user earned an achievement. Unique per
// (user, achievement); only the notification fields ever change.
type AwardedAchievement struct {
	ID string `gorm:"primaryKey;size:36"`

	UserID        string    `gorm:"not null;uniqueIndex:idx_award_key,priority:1"`
	AchievementID string    `gorm:"not null;uniqueIndex:idx_award_key,priority:2"`
	EarnedAt      time.Time `gorm:"not null;index"`
	PointsAwarded int       `gorm:"not null;default:0"`

	// What triggered the award, kept for analytics only.
	ContextTopicID    *string
	ContextDifficulty *string
	ContextScore      *int

	Notified   bool `gorm:"not null;default:false;index"`
	NotifiedAt *time.Time
}
