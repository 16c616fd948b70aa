package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"gorm.io/gorm"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/rank"
)

const maxCommentLength = 512

// CommentService handles video comments.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Add sanitizes and stores a comment on a published video.
func (s *CommentService) Add(ctx context.Context, videoID, userID uint, content string) (*model.Comment, error) {
	content = sanitizeComment(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty comment", ErrValidation)
	}

	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ?", videoID).
		Count(&n).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check video, %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: video %d", ErrNotFound, videoID)
	}

	comment := model.Comment{
		VideoID:   videoID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to insert comment, %w", err)
	}

	return &comment, nil
}

// List returns one page of a video's comments in the requested order.
func (s *CommentService) List(ctx context.Context, videoID uint, offset, count int, mode rank.Mode) ([]model.Comment, error) {
	if mode != rank.Newest && mode != rank.Hottest {
		return nil, fmt.Errorf("%w: comment ordering %q", ErrValidation, mode)
	}

	var comments []model.Comment
	err := s.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Find(&comments).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments, %w", err)
	}

	rank.Comments(comments, mode)

	return page(comments, offset, count), nil
}

// Count returns the number of comments on a video.
func (s *CommentService) Count(ctx context.Context, videoID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("video_id = ?", videoID).
		Count(&n).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to count comments, %w", err)
	}

	return n, nil
}

// sanitizeComment caps the length, escapes markup and normalizes line
// endings. Runs before the length cap would split an escape sequence, so
// the cap applies to the raw input.
func sanitizeComment(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)

	runes := []rune(content)
	if len(runes) > maxCommentLength {
		content = string(runes[:maxCommentLength])
	}

	return html.EscapeString(content)
}

// page slices one pagination window out of an already-ordered result set.
func page[T any](rows []T, offset, count int) []T {
	if offset < 0 || offset >= len(rows) || count <= 0 {
		return []T{}
	}

	end := min(offset+count, len(rows))
	return rows[offset:end]
}
