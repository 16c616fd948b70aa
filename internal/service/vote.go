package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tubehub/catalog-api/internal/model"
)

// VoteService enforces the once-per-day vote ledger. There is no explicit
// locking anywhere: the unique index on the ledger tuple is the only
// serialization point, so unrelated votes never contend with each other.
type VoteService struct {
	db *gorm.DB

	// Overridable clock, used by tests to cross the day boundary
	now func() time.Time
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db, now: time.Now}
}

// Cast records one like or dislike and bumps the matching counter on the
// target. A repeated vote for the same (user, target, action) within the
// same UTC day returns ErrAlreadyVoted and changes nothing. On success the
// post-update counter value is returned.
func (s *VoteService) Cast(ctx context.Context, userID uint, targetType string, targetID uint, liked bool) (int64, error) {
	table, err := voteTarget(targetType)
	if err != nil {
		return 0, err
	}

	action := model.ActionDislike
	column := "dislikes"
	if liked {
		action = model.ActionLike
		column = "likes"
	}

	day := model.VoteDay(s.now())
	db := s.db.WithContext(ctx)

	// Cheap pre-check: skip the counter round-trip for obvious repeats.
	// The unique index below still catches the racing ones.
	var n int64
	err = db.Model(&model.VoteRecord{}).
		Where("user_id = ? AND target_type = ? AND target_id = ? AND action = ? AND day = ?",
			userID, targetType, targetID, action, day).
		Count(&n).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to check vote ledger, %w", err)
	}
	if n > 0 {
		return 0, ErrAlreadyVoted
	}

	res := db.Model(table).
		Where("id = ?", targetID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to increment %s counter, %w", targetType, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: %s %d", ErrNotFound, targetType, targetID)
	}

	err = db.Create(&model.VoteRecord{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Action:     action,
		Day:        day,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent identical vote. The
			// increment above already landed, so compensate it before
			// reporting the repeat.
			comp := db.Model(table).
				Where("id = ?", targetID).
				UpdateColumn(column, gorm.Expr(column+" - 1"))
			if comp.Error != nil {
				return 0, fmt.Errorf("failed to compensate %s counter, %w", targetType, comp.Error)
			}

			return 0, ErrAlreadyVoted
		}

		return 0, fmt.Errorf("failed to insert vote record, %w", err)
	}

	var count int64
	err = db.Model(table).
		Where("id = ?", targetID).
		Select(column).
		Scan(&count).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to read back %s counter, %w", targetType, err)
	}

	return count, nil
}

// Archive drops ledger rows older than the given number of days. The rows
// only guard the current day, so anything behind the boundary is dead
// weight. Returns the number of rows removed.
func (s *VoteService) Archive(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		retentionDays = 1
	}

	cutoff := model.VoteDay(s.now().AddDate(0, 0, -retentionDays))

	res := s.db.WithContext(ctx).
		Where("day < ?", cutoff).
		Delete(&model.VoteRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to archive vote records, %w", res.Error)
	}

	if res.RowsAffected > 0 {
		zap.L().Debug("Archived vote records", zap.Int64("count", res.RowsAffected))
	}

	return res.RowsAffected, nil
}

func voteTarget(targetType string) (any, error) {
	switch targetType {
	case model.TargetVideo:
		return &model.Video{}, nil
	case model.TargetComment:
		return &model.Comment{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown vote target %q", ErrValidation, targetType)
	}
}
