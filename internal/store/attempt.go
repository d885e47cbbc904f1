package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// attemptRepo implements AttemptRepo using gorm.
type attemptRepo struct {
	db *gorm.DB
}

func (r *attemptRepo) Append(ctx context.Context, ev *AttemptEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *attemptRepo) ListForUser(ctx context.Context, userID string, opts QueryOpts) ([]AttemptEvent, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if !opts.From.IsZero() {
		query = query.Where("created_at >= ?", opts.From)
	}
	if !opts.To.IsZero() {
		query = query.Where("created_at <= ?", opts.To)
	}

	var events []AttemptEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, unavailable("query attempt events", err)
	}
	return events, nil
}

func (r *attemptRepo) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&AttemptEvent{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete attempt events: %w", res.Error)
	}
	return res.RowsAffected, nil
}
