package achievements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AwardContext describes what triggered an evaluation. All fields are
// optional and only stored alongside the award.
type AwardContext struct {
	TopicID         curriculum.TopicID
	Difficulty      curriculum.Difficulty
	ScorePercentage *int
}

// Awarded is a newly earned achievement with its display metadata.
type Awarded struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Points      int
	EarnedAt    time.Time
}

// Result summarizes one evaluation pass.
type Result struct {
	NewlyAwarded       []Awarded
	TotalRulesChecked  int
	AlreadyEarnedCount int
	// Failed lists rules that were satisfied but could not be recorded.
	// They are retried on the next evaluation.
	Failed []string
}

// EarnedAchievement is a stored award joined with its rule.
type EarnedAchievement struct {
	Awarded
	Category   Category
	Notified   bool
	NotifiedAt *time.Time
}

// Summary lists everything a user has earned.
type Summary struct {
	Achievements []EarnedAchievement
	TotalPoints  int
	MaxPoints    int
}

// RuleProgress shows how close a user is to one rule.
type RuleProgress struct {
	Rule    Rule
	Earned  bool
	Current float64
	Target  float64
}

// Fraction returns progress in [0, 1].
func (p RuleProgress) Fraction() float64 {
	if p.Earned {
		return 1
	}
	if p.Target <= 0 {
		return 0
	}
	return min(max(p.Current/p.Target, 0), 1)
}

// Service evaluates the catalog against user statistics and records awards.
type Service struct {
	catalog     *Catalog
	cur         *curriculum.Map
	completions store.CompletionRepo
	awards      store.AwardRepo
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates an achievement service. A nil logger disables logging.
func NewService(catalog *Catalog, cur *curriculum.Map, completions store.CompletionRepo, awards store.AwardRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:     catalog,
		cur:         cur,
		completions: completions,
		awards:      awards,
		logger:      logger.Named("achievements"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Catalog returns the rule catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Snapshot computes the user's current statistics.
func (s *Service) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	records, err := s.completions.ListForUser(ctx, userID)
	if err != nil {
		return Snapshot{}, asUnavailable("compute statistics", err)
	}
	return ComputeSnapshot(records, s.cur), nil
}

// EvaluateAndAward checks every rule the user has not yet earned and awards
// the satisfied ones. If statistics or the awarded set cannot be read, it
// returns a *store.DataUnavailableError and awards nothing. A failure to
// record one award is logged and does not stop the others.
func (s *Service) EvaluateAndAward(ctx context.Context, userID string, actx *AwardContext) (*Result, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	awarded, err := s.awards.AwardedIDs(ctx, userID)
	if err != nil {
		return nil, asUnavailable("list awarded achievements", err)
	}

	res := &Result{}
	for _, rule := range s.catalog.Rules() {
		res.TotalRulesChecked++
		if awarded[rule.ID] {
			res.AlreadyEarnedCount++
			continue
		}
		if !rule.Requirement.Satisfied(snap) {
			continue
		}

		a, err := s.Award(ctx, userID, rule, actx)
		var dup *DuplicateAwardError
		switch {
		case errors.As(err, &dup):
			res.AlreadyEarnedCount++
		case err != nil:
			s.logger.Warn("award failed",
				zap.String("user_id", userID),
				zap.String("achievement", rule.ID),
				zap.Error(err),
			)
			res.Failed = append(res.Failed, rule.ID)
		default:
			res.NewlyAwarded = append(res.NewlyAwarded, *a)
		}
	}

	if len(res.NewlyAwarded) > 0 {
		ids := make([]string, len(res.NewlyAwarded))
		for i, a := range res.NewlyAwarded {
			ids[i] = a.ID
		}
		s.logger.Info("achievements awarded",
			zap.String("user_id", userID),
			zap.Strings("achievements", ids),
		)
	}
	return res, nil
}

// Award records rule as earned by the user. It returns a
// *DuplicateAwardError if the user already holds it.
func (s *Service) Award(ctx context.Context, userID string, rule Rule, actx *AwardContext) (*Awarded, error) {
	if userID == "" {
		return nil, fmt.Errorf("award %s: empty user id", rule.ID)
	}
	row := &store.AwardedAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: rule.ID,
		EarnedAt:      s.now(),
		PointsAwarded: rule.Points,
	}
	if actx != nil {
		if actx.TopicID != "" {
			topic := string(actx.TopicID)
			row.ContextTopicID = &topic
		}
		if actx.Difficulty != "" {
			d := string(actx.Difficulty)
			row.ContextDifficulty = &d
		}
		if actx.ScorePercentage != nil {
			score := *actx.ScorePercentage
			row.ContextScore = &score
		}
	}

	if err := s.awards.Insert(ctx, row); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &DuplicateAwardError{UserID: userID, AchievementID: rule.ID}
		}
		return nil, fmt.Errorf("award %s: %w", rule.ID, err)
	}

	return &Awarded{
		ID:          rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Icon:        rule.Icon,
		Points:      rule.Points,
		EarnedAt:    row.EarnedAt,
	}, nil
}

// MarkNotified flags awards as shown to the user. Repeating it is harmless.
func (s *Service) MarkNotified(ctx context.Context, userID string, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.awards.MarkNotified(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("mark notified: %w", err)
	}
	return n, nil
}

// Pending returns awards the user has not yet been notified about.
func (s *Service) Pending(ctx context.Context, userID string) ([]EarnedAchievement, error) {
	rows, err := s.awards.ListForUser(ctx, userID, store.AwardQuery{PendingOnly: true})
	if err != nil {
		return nil, asUnavailable("list pending achievements", err)
	}
	return s.join(rows), nil
}

// Earned returns every award the user holds with the total points.
func (s *Service) Earned(ctx context.Context, userID string) (*Summary, error) {
	rows, err := s.awards.ListForUser(ctx, userID, store.AwardQuery{})
	if err != nil {
		return nil, asUnavailable("list achievements", err)
	}
	sum := &Summary{
		Achievements: s.join(rows),
		MaxPoints:    s.catalog.MaxPoints(),
	}
	for _, r := range rows {
		sum.TotalPoints += r.PointsAwarded
	}
	return sum, nil
}

// Progress reports, for every rule, whether it is earned and how far the
// user is from it.
func (s *Service) Progress(ctx context.Context, userID string) ([]RuleProgress, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	awarded, err := s.awards.AwardedIDs(ctx, userID)
	if err != nil {
		return nil, asUnavailable("list awarded achievements", err)
	}

	rules := s.catalog.Rules()
	out := make([]RuleProgress, 0, len(rules))
	for _, rule := range rules {
		p := RuleProgress{Rule: rule, Earned: awarded[rule.ID]}
		switch req := rule.Requirement.(type) {
		case Threshold:
			p.Current, _ = snap.Value(req.Metric)
			p.Target = req.Value
			if req.Op != OpGTE && req.Op != OpGT {
				// Progress toward an upper bound or equality is binary.
				p.Current, p.Target = 0, 1
				if req.Satisfied(snap) {
					p.Current = 1
				}
			}
		case MedalIncludes:
			tp := snap.Tiers[req.Tier]
			p.Current, p.Target = float64(tp.Completed), float64(tp.Total)
		case AllMedals:
			p.Target = float64(len(req.Tiers))
			for _, t := range req.Tiers {
				if snap.Medals[t] {
					p.Current++
				}
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Reset removes every award for the user.
func (s *Service) Reset(ctx context.Context, userID string) (int64, error) {
	n, err := s.awards.DeleteForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("reset achievements: %w", err)
	}
	s.logger.Info("achievements reset", zap.String("user_id", userID), zap.Int64("removed", n))
	return n, nil
}

func (s *Service) join(rows []store.AwardedAchievement) []EarnedAchievement {
	out := make([]EarnedAchievement, 0, len(rows))
	for _, r := range rows {
		e := EarnedAchievement{
			Awarded: Awarded{
				ID:       r.AchievementID,
				Name:     r.AchievementID,
				Points:   r.PointsAwarded,
				EarnedAt: r.EarnedAt,
			},
			Notified:   r.Notified,
			NotifiedAt: r.NotifiedAt,
		}
		// Awards for rules since removed from the catalog keep their ID as name.
		if rule, ok := s.catalog.Rule(r.AchievementID); ok {
			e.Name = rule.Name
			e.Description = rule.Description
			e.Icon = rule.Icon
			e.Category = rule.Category
		}
		out = append(out, e)
	}
	return out
}
