package store

import (
	"context"
	"time"

	"github.com/abhisek/grammarquest/internal/curriculum"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// CompletionRepo manages per (user, topic, difficulty) completion records.
type CompletionRepo interface {
	// ListForUser returns every completion record for the user.
	ListForUser(ctx context.Context, userID string) ([]CompletionRecord, error)

	// Get returns one record, or nil if the user never attempted the cell.
	Get(ctx context.Context, userID string, topic curriculum.TopicID, d curriculum.Difficulty) (*CompletionRecord, error)

	// Create inserts a new record. Returns ErrDuplicate if one already exists.
	Create(ctx context.Context, rec *CompletionRecord) error

	// Update saves an existing record.
	Update(ctx context.Context, rec *CompletionRecord) error

	// DeleteForUser removes all records for the user.
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}

// TxRepos holds the repositories bound to a single transaction.
type TxRepos struct {
	Completions CompletionRepo
	Attempts    AttemptRepo
}

// AttemptRepo provides append access to attempt events.
type AttemptRepo interface {
	// Append records a scored attempt. An empty ID is filled in.
	Append(ctx context.Context, ev *AttemptEvent) error

	// ListForUser returns attempts newest first.
	ListForUser(ctx context.Context, userID string, opts QueryOpts) ([]AttemptEvent, error)

	// DeleteForUser removes all attempts for the user.
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}

// AwardQuery filters ListForUser on AwardRepo.
type AwardQuery struct {
	PendingOnly bool // only awards not yet acknowledged by the client
}

// AwardRepo manages awarded achievements.
type AwardRepo interface {
	// AwardedIDs returns the set of achievement IDs the user already holds.
	AwardedIDs(ctx context.Context, userID string) (map[string]bool, error)

	// Insert stores a new award. Returns ErrDuplicate if the user already
	// holds the achievement.
	Insert(ctx context.Context, award *AwardedAchievement) error

	// MarkNotified flags the given awards as shown to the user. Already
	// notified or unknown IDs are ignored. Returns the number of rows changed.
	MarkNotified(ctx context.Context, userID string, achievementIDs []string) (int64, error)

	// ListForUser returns the user's awards, oldest first.
	ListForUser(ctx context.Context, userID string, q AwardQuery) ([]AwardedAchievement, error)

	// DeleteForUser removes all awards for the user (admin/test reset).
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}
