package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/search"
)

// SearchResult is a published video enriched with its relevance against the
// query. Rows are never mutated in place; results are built as copies.
type SearchResult struct {
	model.Video
	Relevance float64 `json:"relevance"`
}

// SearchService ranks published videos against free-form queries.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns one page of results ordered by relevance, with the
// engagement score breaking ties. Queries that match nothing, including
// malformed ones, yield an empty set instead of an error.
func (s *SearchService) Search(ctx context.Context, query string, categoryID *uint, offset, count int) ([]SearchResult, error) {
	candidates, err := s.candidates(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(candidates))
	for _, v := range candidates {
		rel := search.Relevance(query, searchFields(&v))
		if rel <= 0 {
			continue
		}

		results = append(results, SearchResult{Video: v, Relevance: rel})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		return results[i].Score() > results[j].Score()
	})

	if count == 0 {
		return results, nil
	}

	return page(results, offset, count), nil
}

// CountResults returns the total number of matches for a query.
func (s *SearchService) CountResults(ctx context.Context, query string, categoryID *uint) (int, error) {
	results, err := s.Search(ctx, query, categoryID, 0, 0)
	if err != nil {
		return 0, err
	}

	return len(results), nil
}

// candidates pulls every published row that contains at least one query
// fragment. Matching is re-scored precisely in process; this pass only has
// to be a superset of the final result set. All fragment values travel as
// bind parameters.
//
// The scorer folds case for all of Unicode but SQL LOWER only folds ASCII
// on sqlite and LIKE folds nothing on postgres, so both sides are lowered
// explicitly and the text narrowing is skipped entirely as soon as a
// fragment carries a non-ASCII byte. Skipping keeps the superset guarantee;
// the scorer drops the non-matches either way.
func (s *SearchService) candidates(ctx context.Context, query string, categoryID *uint) ([]model.Video, error) {
	fragments := search.Fragments(query)
	if len(fragments) == 0 {
		return nil, nil
	}

	q := s.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id NOT IN (SELECT video_id FROM pending_ingestions)")

	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	if asciiOnly(fragments) {
		match := s.db.Session(&gorm.Session{NewDB: true})
		for _, fragm := range fragments {
			pattern := "%" + strings.ToLower(fragm) + "%"
			match = match.Or("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
				pattern, pattern, pattern)
		}
		q = q.Where(match)
	}

	var videos []model.Video
	if err := q.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch search candidates, %w", err)
	}

	return videos, nil
}

func asciiOnly(fragments []string) bool {
	for _, f := range fragments {
		for i := 0; i < len(f); i++ {
			if f[i] >= utf8.RuneSelf {
				return false
			}
		}
	}
	return true
}

func searchFields(v *model.Video) search.Fields {
	tags := make([]string, 0, len(v.Tags))
	for t := range v.Tags {
		tags = append(tags, t)
	}

	return search.Fields{
		Title:       v.Title,
		Description: v.Description,
		Tags:        tags,
	}
}
