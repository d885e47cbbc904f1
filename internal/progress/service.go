package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/store"
	"go.uber.org/zap"
)

// Config holds progress tracking configuration.
type Config struct {
	// CompletionThreshold is the best-score percentage that completes a
	// (topic, difficulty) cell. Default: 70.
	CompletionThreshold int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{CompletionThreshold: DefaultCompletionThreshold}
}

// RecordResult describes what a recorded attempt changed.
type RecordResult struct {
	Record          store.CompletionRecord
	Transition      *Transition
	ScorePercentage int
}

// Store is the persistence the progress service needs. *store.Store
// implements it.
type Store interface {
	CompletionRepo() store.CompletionRepo
	AttemptRepo() store.AttemptRepo
	InTx(ctx context.Context, fn func(store.TxRepos) error) error
}

// Service records attempts and evaluates tier access.
type Service struct {
	cur    *curriculum.Map
	store  Store
	cfg    Config
	logger *zap.Logger
}

// NewService creates a progress service. A nil logger disables logging.
func NewService(cur *curriculum.Map, st Store, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CompletionThreshold <= 0 {
		cfg.CompletionThreshold = DefaultCompletionThreshold
	}
	return &Service{
		cur:    cur,
		store:  st,
		cfg:    cfg,
		logger: logger.Named("progress"),
	}
}

// Curriculum returns the topic map the service evaluates against.
func (s *Service) Curriculum() *curriculum.Map {
	return s.cur
}

// RecordAttempt validates an attempt, folds it into the matching completion
// record and appends it to the attempt log. Both writes share one
// transaction: either the attempt is counted and logged, or neither.
func (s *Service) RecordAttempt(ctx context.Context, a Attempt) (*RecordResult, error) {
	if err := a.Validate(s.cur); err != nil {
		return nil, err
	}
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}

	var (
		rec        store.CompletionRecord
		transition *Transition
	)
	err := s.store.InTx(ctx, func(tx store.TxRepos) error {
		var err error
		rec, transition, err = s.upsert(ctx, tx.Completions, a)
		if err != nil {
			return err
		}
		ev := &store.AttemptEvent{
			UserID:           a.UserID,
			TopicID:          a.TopicID,
			Difficulty:       a.Difficulty,
			Score:            a.Score,
			MaxScore:         a.MaxScore,
			ScorePercentage:  a.ScorePercentage(),
			TimeSpentSeconds: a.TimeSpentSeconds,
			HintsUsed:        a.HintsUsed,
			CreatedAt:        a.At,
		}
		if err := tx.Attempts.Append(ctx, ev); err != nil {
			return fmt.Errorf("append attempt: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if transition != nil {
		s.logger.Info("completion state changed",
			zap.String("user_id", a.UserID),
			zap.String("topic", string(transition.TopicID)),
			zap.String("difficulty", string(transition.Difficulty)),
			zap.String("from", string(transition.From)),
			zap.String("to", string(transition.To)),
			zap.String("trigger", transition.Trigger),
		)
	}

	return &RecordResult{
		Record:          rec,
		Transition:      transition,
		ScorePercentage: a.ScorePercentage(),
	}, nil
}

// upsert performs the read-modify-write of the completion record inside the
// caller's transaction. An insert that loses to a row written by another
// process hits the unique index and is retried as an update of that row.
func (s *Service) upsert(ctx context.Context, completions store.CompletionRepo, a Attempt) (store.CompletionRecord, *Transition, error) {
	const maxTries = 3
	for try := 0; try < maxTries; try++ {
		prev, err := completions.Get(ctx, a.UserID, a.TopicID, a.Difficulty)
		if err != nil {
			return store.CompletionRecord{}, nil, fmt.Errorf("load completion record: %w", err)
		}

		next, transition := ApplyAttempt(prev, a, s.cfg.CompletionThreshold)

		if prev == nil {
			err = completions.Create(ctx, &next)
			if errors.Is(err, store.ErrDuplicate) {
				s.logger.Debug("completion record created concurrently, retrying",
					zap.String("user_id", a.UserID),
					zap.String("topic", string(a.TopicID)),
					zap.String("difficulty", string(a.Difficulty)),
				)
				continue
			}
		} else {
			err = completions.Update(ctx, &next)
		}
		if err != nil {
			return store.CompletionRecord{}, nil, fmt.Errorf("save completion record: %w", err)
		}
		return next, transition, nil
	}
	return store.CompletionRecord{}, nil, fmt.Errorf("save completion record: gave up after %d conflicting writes", maxTries)
}

// Records returns every completion record for the user.
func (s *Service) Records(ctx context.Context, userID string) ([]store.CompletionRecord, error) {
	return s.store.CompletionRepo().ListForUser(ctx, userID)
}

// Attempts returns the user's most recent attempts, newest first.
func (s *Service) Attempts(ctx context.Context, userID string, limit int) ([]store.AttemptEvent, error) {
	return s.store.AttemptRepo().ListForUser(ctx, userID, store.QueryOpts{Limit: limit})
}

// EvaluateUnlockedTiers recomputes the user's accessible tiers from the
// current completion records. Nothing is cached.
func (s *Service) EvaluateUnlockedTiers(ctx context.Context, userID string) ([]curriculum.Difficulty, error) {
	records, err := s.store.CompletionRepo().ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("evaluate unlocked tiers: %w", err)
	}
	return UnlockedTiers(records, s.cur), nil
}

// IsUnlocked reports whether the user may attempt tier d.
func (s *Service) IsUnlocked(ctx context.Context, userID string, d curriculum.Difficulty) (bool, error) {
	if d == curriculum.Easy {
		return true, nil
	}
	tiers, err := s.EvaluateUnlockedTiers(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, t := range tiers {
		if t == d {
			return true, nil
		}
	}
	return false, nil
}

// Reset deletes all progress for the user.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.store.InTx(ctx, func(tx store.TxRepos) error {
		if _, err := tx.Completions.DeleteForUser(ctx, userID); err != nil {
			return err
		}
		_, err := tx.Attempts.DeleteForUser(ctx, userID)
		return err
	})
}
