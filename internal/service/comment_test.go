package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubehub/catalog-api/internal/model"
	"tubehub/catalog-api/internal/rank"
)

func TestAddComment(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewCommentService(db)

	c, err := svc.Add(context.Background(), v.ID, 1, "  first!\r\n")
	require.NoError(t, err)
	assert.Equal(t, "first!", c.Content)
	assert.NotZero(t, c.ID)
}

func TestAddCommentEscapesMarkup(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewCommentService(db)

	c, err := svc.Add(context.Background(), v.ID, 1, `<script>alert("x")</script>`)
	require.NoError(t, err)
	assert.NotContains(t, c.Content, "<script>")
	assert.Contains(t, c.Content, "&lt;script&gt;")
}

func TestAddCommentCapsLength(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewCommentService(db)

	c, err := svc.Add(context.Background(), v.ID, 1, strings.Repeat("a", 2000))
	require.NoError(t, err)
	assert.Len(t, []rune(c.Content), maxCommentLength)
}

func TestAddCommentEscapeExpansion(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewCommentService(db)

	// The rune cap applies to the raw input; escaping afterwards can blow
	// the content up several times, which still has to fit the column.
	c, err := svc.Add(context.Background(), v.ID, 1, strings.Repeat(`"`, maxCommentLength))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("&#34;", maxCommentLength), c.Content)

	var stored model.Comment
	require.NoError(t, db.First(&stored, c.ID).Error)
	assert.Equal(t, c.Content, stored.Content)
}

func TestAddCommentValidation(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewCommentService(db)

	_, err := svc.Add(context.Background(), v.ID, 1, "   \r\n  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(context.Background(), v.ID+100, 1, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsOrdering(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewCommentService(db)

	now := time.Now().UTC()
	seed := []model.Comment{
		{VideoID: v.ID, Content: "old untouched", CreatedAt: now.Add(-3 * time.Hour)},
		{VideoID: v.ID, Content: "popular", Likes: 5, Dislikes: 1, CreatedAt: now.Add(-2 * time.Hour)},
		{VideoID: v.ID, Content: "new untouched", CreatedAt: now.Add(-1 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	newest, err := svc.List(context.Background(), v.ID, 0, 10, rank.Newest)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "new untouched", newest[0].Content)
	assert.Equal(t, "old untouched", newest[2].Content)

	// Hottest puts voted-on comments first, the rest newest-first
	hottest, err := svc.List(context.Background(), v.ID, 0, 10, rank.Hottest)
	require.NoError(t, err)
	require.Len(t, hottest, 3)
	assert.Equal(t, "popular", hottest[0].Content)
	assert.Equal(t, "new untouched", hottest[1].Content)

	_, err = svc.List(context.Background(), v.ID, 0, 10, rank.Alphabetical)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPageWindow(t *testing.T) {
	rows := []int{0, 1, 2, 3, 4}

	assert.Equal(t, []int{1, 2}, page(rows, 1, 2))
	assert.Equal(t, []int{4}, page(rows, 4, 10))
	assert.Empty(t, page(rows, 5, 2))
	assert.Empty(t, page(rows, -1, 2))
	assert.Empty(t, page(rows, 0, 0))
}
