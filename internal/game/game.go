// Package game ties attempt recording, tier unlocking and achievement
// awarding into a single submission step.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/grammarquest/internal/achievements"
	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrTierLocked is returned when an attempt targets a tier the user has
// not unlocked yet.
var ErrTierLocked = errors.New("tier locked")

// Progress is the part of the progress service a submission needs.
type Progress interface {
	Curriculum() *curriculum.Map
	RecordAttempt(ctx context.Context, a progress.Attempt) (*progress.RecordResult, error)
	EvaluateUnlockedTiers(ctx context.Context, userID string) ([]curriculum.Difficulty, error)
}

// Awarder evaluates achievements after an attempt.
type Awarder interface {
	EvaluateAndAward(ctx context.Context, userID string, actx *achievements.AwardContext) (*achievements.Result, error)
}

// SubmitResult is everything a client shows after a submission.
type SubmitResult struct {
	progress.RecordResult

	UnlockedTiers []curriculum.Difficulty
	NewlyUnlocked []curriculum.Difficulty

	// Achievements is never nil. When evaluation failed it is empty and
	// AchievementsSkipped is set.
	Achievements        *achievements.Result
	AchievementsSkipped bool
}

// Service handles attempt submissions.
type Service struct {
	progress Progress
	awarder  Awarder
	logger   *zap.Logger
}

// NewService creates a game service. awarder may be nil to disable
// achievements. A nil logger disables logging.
func NewService(p Progress, awarder Awarder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		progress: p,
		awarder:  awarder,
		logger:   logger.Named("game"),
	}
}

// SubmitAttempt records a scored attempt. Attempts at a locked tier are
// rejected with ErrTierLocked. Once the attempt is saved, later failures
// (unlock re-evaluation, achievements) are logged and never undo it.
func (s *Service) SubmitAttempt(ctx context.Context, a progress.Attempt) (*SubmitResult, error) {
	if err := a.Validate(s.progress.Curriculum()); err != nil {
		return nil, err
	}

	before, err := s.progress.EvaluateUnlockedTiers(ctx, a.UserID)
	if err != nil {
		return nil, fmt.Errorf("check tier access: %w", err)
	}
	if !lo.Contains(before, a.Difficulty) {
		return nil, fmt.Errorf("%w: %s", ErrTierLocked, a.Difficulty)
	}

	rr, err := s.progress.RecordAttempt(ctx, a)
	if err != nil {
		return nil, err
	}

	res := &SubmitResult{
		RecordResult:  *rr,
		UnlockedTiers: before,
		Achievements:  &achievements.Result{},
	}

	after, err := s.progress.EvaluateUnlockedTiers(ctx, a.UserID)
	if err != nil {
		s.logger.Warn("unlock re-evaluation failed", zap.String("user_id", a.UserID), zap.Error(err))
	} else {
		res.UnlockedTiers = after
		res.NewlyUnlocked = progress.NewlyUnlocked(before, after)
		for _, d := range res.NewlyUnlocked {
			s.logger.Info("tier unlocked", zap.String("user_id", a.UserID), zap.String("tier", string(d)))
		}
	}

	if s.awarder == nil {
		return res, nil
	}
	score := rr.ScorePercentage
	ach, err := s.awarder.EvaluateAndAward(ctx, a.UserID, &achievements.AwardContext{
		TopicID:         a.TopicID,
		Difficulty:      a.Difficulty,
		ScorePercentage: &score,
	})
	if err != nil {
		s.logger.Warn("achievement evaluation failed", zap.String("user_id", a.UserID), zap.Error(err))
		res.AchievementsSkipped = true
		return res, nil
	}
	res.Achievements = ach
	return res, nil
}
