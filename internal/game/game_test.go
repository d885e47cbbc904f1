package game

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/grammarquest/internal/achievements"
	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type env struct {
	store    *store.Store
	progress *progress.Service
	achieve  *achievements.Service
	game     *Service
}

func newEnv(t *testing.T, logger *zap.Logger) *env {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cur := curriculum.Default()
	p := progress.NewService(cur, st, progress.DefaultConfig(), logger)
	a := achievements.NewService(achievements.DefaultCatalog(), cur, st.CompletionRepo(), st.AwardRepo(), logger)
	return &env{store: st, progress: p, achieve: a, game: NewService(p, a, logger)}
}

func attempt(topic curriculum.TopicID, d curriculum.Difficulty, score int) progress.Attempt {
	return progress.Attempt{UserID: "u1", TopicID: topic, Difficulty: d, Score: score, MaxScore: 10, TimeSpentSeconds: 90}
}

func newlyAwardedIDs(res *SubmitResult) []string {
	return lo.Map(res.Achievements.NewlyAwarded, func(a achievements.Awarded, _ int) string { return a.ID })
}

func TestSubmitAttempt_UnlockAndAward(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	res, err := e.game.SubmitAttempt(ctx, attempt("present-tenses", curriculum.Easy, 8))
	require.NoError(t, err)
	assert.Equal(t, 80, res.ScorePercentage)
	assert.True(t, res.Record.IsCompleted)
	assert.Empty(t, res.NewlyUnlocked)
	assert.Equal(t, []string{"first_lesson"}, newlyAwardedIDs(res))

	res, err = e.game.SubmitAttempt(ctx, attempt("articles", curriculum.Easy, 7))
	require.NoError(t, err)
	assert.Equal(t, []curriculum.Difficulty{curriculum.Medium}, res.NewlyUnlocked)
	assert.Equal(t, []curriculum.Difficulty{curriculum.Easy, curriculum.Medium}, res.UnlockedTiers)
	assert.Equal(t, []string{"easy_master"}, newlyAwardedIDs(res))
	assert.Equal(t, 1, res.Achievements.AlreadyEarnedCount)

	// Medium is now open.
	res, err = e.game.SubmitAttempt(ctx, attempt("articles", curriculum.Medium, 3))
	require.NoError(t, err)
	assert.False(t, res.Record.IsCompleted)
	assert.Empty(t, res.NewlyUnlocked)
}

func TestSubmitAttempt_LockedTier(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	_, err := e.game.SubmitAttempt(ctx, attempt("prepositions", curriculum.Medium, 10))
	require.ErrorIs(t, err, ErrTierLocked)

	records, err := e.progress.Records(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records, "rejected attempts are not stored")
}

func TestSubmitAttempt_Invalid(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.game.SubmitAttempt(context.Background(), attempt("gerunds", curriculum.Easy, 5))
	assert.ErrorIs(t, err, progress.ErrInvalidAttempt)
}

func TestSubmitAttempt_BelowThresholdKeepsTierLocked(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	_, err := e.game.SubmitAttempt(ctx, attempt("present-tenses", curriculum.Easy, 10))
	require.NoError(t, err)
	res, err := e.game.SubmitAttempt(ctx, attempt("articles", curriculum.Easy, 6))
	require.NoError(t, err)

	assert.Equal(t, []curriculum.Difficulty{curriculum.Easy}, res.UnlockedTiers)
	assert.Empty(t, res.NewlyUnlocked)
}

type failingAwarder struct{}

func (failingAwarder) EvaluateAndAward(context.Context, string, *achievements.AwardContext) (*achievements.Result, error) {
	return nil, &store.DataUnavailableError{Op: "compute statistics", Err: errors.New("database is locked")}
}

func TestSubmitAttempt_AchievementFailureKeepsAttempt(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := newEnv(t, nil)
	g := NewService(e.progress, failingAwarder{}, zap.New(core))
	ctx := context.Background()

	res, err := g.SubmitAttempt(ctx, attempt("articles", curriculum.Easy, 9))
	require.NoError(t, err)
	assert.True(t, res.AchievementsSkipped)
	require.NotNil(t, res.Achievements)
	assert.Empty(t, res.Achievements.NewlyAwarded)
	assert.Equal(t, 1, logs.FilterMessage("achievement evaluation failed").Len())

	records, err := e.progress.Records(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// The award is picked up by the next successful evaluation.
	ach, err := e.achieve.EvaluateAndAward(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Contains(t, lo.Map(ach.NewlyAwarded, func(a achievements.Awarded, _ int) string { return a.ID }), "first_lesson")
}

func TestSubmitAttempt_NoAwarder(t *testing.T) {
	e := newEnv(t, nil)
	g := NewService(e.progress, nil, nil)

	res, err := g.SubmitAttempt(context.Background(), attempt("articles", curriculum.Easy, 9))
	require.NoError(t, err)
	assert.False(t, res.AchievementsSkipped)
	assert.Empty(t, res.Achievements.NewlyAwarded)
}

type stubProgress struct {
	cur     *curriculum.Map
	tiers   [][]curriculum.Difficulty
	tierErr []error
	calls   int
}

func (s *stubProgress) Curriculum() *curriculum.Map { return s.cur }

func (s *stubProgress) RecordAttempt(_ context.Context, a progress.Attempt) (*progress.RecordResult, error) {
	return &progress.RecordResult{ScorePercentage: a.ScorePercentage()}, nil
}

func (s *stubProgress) EvaluateUnlockedTiers(context.Context, string) ([]curriculum.Difficulty, error) {
	i := s.calls
	s.calls++
	return s.tiers[i], s.tierErr[i]
}

func TestSubmitAttempt_UnlockReevaluationFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := &stubProgress{
		cur:     curriculum.Default(),
		tiers:   [][]curriculum.Difficulty{{curriculum.Easy}, nil},
		tierErr: []error{nil, errors.New("io")},
	}
	g := NewService(p, nil, zap.New(core))

	res, err := g.SubmitAttempt(context.Background(), attempt("articles", curriculum.Easy, 9))
	require.NoError(t, err)
	assert.Equal(t, []curriculum.Difficulty{curriculum.Easy}, res.UnlockedTiers)
	assert.Empty(t, res.NewlyUnlocked)
	assert.Equal(t, 1, logs.FilterMessage("unlock re-evaluation failed").Len())
}

func TestSubmitAttempt_AccessCheckFailure(t *testing.T) {
	p := &stubProgress{
		cur:     curriculum.Default(),
		tiers:   [][]curriculum.Difficulty{nil},
		tierErr: []error{&store.DataUnavailableError{Op: "list", Err: errors.New("io")}},
	}
	g := NewService(p, nil, nil)

	_, err := g.SubmitAttempt(context.Background(), attempt("articles", curriculum.Easy, 9))
	var dataErr *store.DataUnavailableError
	assert.ErrorAs(t, err, &dataErr)
}
