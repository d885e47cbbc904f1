package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/grammarquest/internal/curriculum"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// completionRepo implements CompletionRepo using gorm.
type completionRepo struct {
	db *gorm.DB
}

func (r *completionRepo) ListForUser(ctx context.Context, userID string) ([]CompletionRecord, error) {
	var recs []CompletionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&recs).Error
	if err != nil {
		return nil, unavailable("list completion records", err)
	}
	return recs, nil
}

func (r *completionRepo) Get(ctx context.Context, userID string, topic curriculum.TopicID, d curriculum.Difficulty) (*CompletionRecord, error) {
	var rec CompletionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ? AND difficulty = ?", userID, topic, d).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, unavailable("get completion record", err)
	}
	return &rec, nil
}

func (r *completionRepo) Create(ctx context.Context, rec *CompletionRecord) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rec)
	if res.Error != nil {
		return fmt.Errorf("create completion record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("create completion record %s/%s/%s: %w", rec.UserID, rec.TopicID, rec.Difficulty, ErrDuplicate)
	}
	return nil
}

func (r *completionRepo) Update(ctx context.Context, rec *CompletionRecord) error {
	if rec.ID == 0 {
		return fmt.Errorf("update completion record: missing ID")
	}
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("update completion record: %w", err)
	}
	return nil
}

func (r *completionRepo) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&CompletionRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete completion records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
