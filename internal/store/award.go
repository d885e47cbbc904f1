package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// awardRepo implements AwardRepo using gorm.
type awardRepo struct {
	db *gorm.DB
}

func (r *awardRepo) AwardedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&AwardedAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, unavailable("query awarded achievements", err)
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *awardRepo) Insert(ctx context.Context, award *AwardedAchievement) error {
	if award.ID == "" {
		award.ID = uuid.NewString()
	}
	if award.EarnedAt.IsZero() {
		award.EarnedAt = time.Now().UTC()
	}

	// The unique index on (user_id, achievement_id) turns a racing second
	// insert into a no-op.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(award)
	if res.Error != nil {
		return fmt.Errorf("save award: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save award %s for %s: %w", award.AchievementID, award.UserID, ErrDuplicate)
	}
	return nil
}

func (r *awardRepo) MarkNotified(ctx context.Context, userID string, achievementIDs []string) (int64, error) {
	if len(achievementIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&AwardedAchievement{}).
		Where("user_id = ? AND achievement_id IN ? AND notified = ?", userID, achievementIDs, false).
		Updates(map[string]any{"notified": true, "notified_at": now})
	if res.Error != nil {
		return 0, fmt.Errorf("mark notified: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *awardRepo) ListForUser(ctx context.Context, userID string, q AwardQuery) ([]AwardedAchievement, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at asc")
	if q.PendingOnly {
		query = query.Where("notified = ?", false)
	}

	var awards []AwardedAchievement
	if err := query.Find(&awards).Error; err != nil {
		return nil, unavailable("list awards", err)
	}
	return awards, nil
}

func (r *awardRepo) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&AwardedAchievement{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete awards: %w", res.Error)
	}
	return res.RowsAffected, nil
}
