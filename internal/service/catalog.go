package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/rank"
)

// VideoFilter narrows a catalog listing. Zero fields mean "all".
type VideoFilter struct {
	CategoryID *uint
	User       model.UserSelector

	// Admin view: also show videos whose ingestion completed but which
	// haven't been finalized yet
	IncludeUnactivated bool

	Order  rank.Mode
	Offset int
	Count  int
}

// CatalogService serves the published-video read paths.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) filtered(ctx context.Context, f VideoFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.Video{})

	if f.IncludeUnactivated {
		q = q.Where(
			"id NOT IN (SELECT video_id FROM pending_ingestions WHERE cis_response <> ?)",
			model.CISCompletion)
	} else {
		q = q.Where("id NOT IN (SELECT video_id FROM pending_ingestions)")
	}

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	switch {
	case f.User.IsZero():
	case f.User.ID != 0:
		q = q.Where("user_id = ?", f.User.ID)
	default:
		q = q.Where("user_id IN (SELECT id FROM users WHERE username = ?)", f.User.Username)
	}

	return q
}

// List returns one page of the catalog, ordered by the requested mode. The
// ordering runs in process over the filtered rows; the storage layer only
// filters.
func (s *CatalogService) List(ctx context.Context, f VideoFilter) ([]model.Video, error) {
	if f.Order == "" {
		f.Order = rank.Hottest
	}
	if !rank.ValidModes[f.Order] {
		return nil, fmt.Errorf("%w: ordering %q", ErrValidation, f.Order)
	}

	var videos []model.Video
	if err := s.filtered(ctx, f).Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos, %w", err)
	}

	rank.Videos(videos, f.Order)

	if f.Count == 0 {
		return videos, nil
	}

	return page(videos, f.Offset, f.Count), nil
}

// Count returns the number of videos matching the filter.
func (s *CatalogService) Count(ctx context.Context, f VideoFilter) (int64, error) {
	var n int64
	if err := s.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count videos, %w", err)
	}

	return n, nil
}

// Get fetches one video by id. A non-empty name must match the stored slug;
// a mismatch means the caller followed a stale or forged link.
func (s *CatalogService) Get(ctx context.Context, id uint, name string) (*model.Video, error) {
	var video model.Video

	err := s.db.WithContext(ctx).First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch video, %w", err)
	}

	if name != "" && video.Name != name {
		return nil, fmt.Errorf("%w: video name mismatch", ErrValidation)
	}

	return &video, nil
}

// IncViews bumps the view counter by one. A single-row atomic update, no
// read-modify-write.
func (s *CatalogService) IncViews(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment views, %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: video %d", ErrNotFound, id)
	}

	return nil
}
