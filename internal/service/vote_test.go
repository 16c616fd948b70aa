package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tubehub/catalog-api/internal/model"
)

func seedVideo(t *testing.T, db *gorm.DB) *model.Video {
	t.Helper()

	v := model.Video{
		Name:      "test-video",
		Title:     "Test video",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&v).Error)

	return &v
}

func TestCastVote(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewVoteService(db)

	count, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 1, got.Likes)
	assert.EqualValues(t, 0, got.Dislikes)
}

func TestCastVoteSameDayRepeat(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewVoteService(db)

	_, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	require.NoError(t, err)

	// Same user, same target, same action, same day: absorbed
	_, err = svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 1, got.Likes, "counter must stay unchanged on a repeat")
}

func TestCastVoteNextDaySucceeds(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewVoteService(db)

	today := time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	_, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	require.NoError(t, err)

	// Ten minutes later it's the next UTC day and the vote counts again
	svc.now = func() time.Time { return today.Add(10 * time.Minute) }

	count, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCastVoteDistinctActionsSameDay(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewVoteService(db)

	_, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	require.NoError(t, err)

	// A dislike is a different ledger tuple, so it goes through
	count, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 1, got.Likes)
	assert.EqualValues(t, 1, got.Dislikes)
}

func TestCastVoteDifferentUsers(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewVoteService(db)

	for userID := uint(1); userID <= 3; userID++ {
		_, err := svc.Cast(context.Background(), userID, model.TargetVideo, v.ID, true)
		require.NoError(t, err)
	}

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 3, got.Likes)
}

func TestCastVoteOnComment(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)

	comment := model.Comment{VideoID: v.ID, UserID: 1, Content: "hi", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&comment).Error)

	svc := NewVoteService(db)

	count, err := svc.Cast(context.Background(), 2, model.TargetComment, comment.ID, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var got model.Comment
	require.NoError(t, db.First(&got, comment.ID).Error)
	assert.EqualValues(t, 1, got.Dislikes)
}

func TestCastVoteUnknownTarget(t *testing.T) {
	db := testDB(t)
	svc := NewVoteService(db)

	_, err := svc.Cast(context.Background(), 1, "playlist", 1, true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Cast(context.Background(), 1, model.TargetVideo, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCastVotePlantedLedgerRow(t *testing.T) {
	db := testDB(t)
	v := seedVideo(t, db)
	svc := NewVoteService(db)

	// A ledger row written by another node for the same tuple must block
	// the vote without any counter drift.
	require.NoError(t, db.Create(&model.VoteRecord{
		UserID:     1,
		TargetType: model.TargetVideo,
		TargetID:   v.ID,
		Action:     model.ActionLike,
		Day:        model.VoteDay(time.Now()),
	}).Error)

	_, err := svc.Cast(context.Background(), 1, model.TargetVideo, v.ID, true)
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 0, got.Likes)
}

func TestCastVoteUniqueIndexGuard(t *testing.T) {
	db := testDB(t)

	// The ledger's unique index is the sole serialization point: a raw
	// duplicate insert must fail as a duplicated key so Cast can
	// compensate the counter it already bumped.
	rec := model.VoteRecord{
		UserID:     1,
		TargetType: model.TargetVideo,
		TargetID:   7,
		Action:     model.ActionLike,
		Day:        "2024-03-01",
	}
	require.NoError(t, db.Create(&rec).Error)

	dup := rec
	dup.ID = 0
	err := db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestArchiveVotes(t *testing.T) {
	db := testDB(t)
	svc := NewVoteService(db)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rows := []model.VoteRecord{
		{UserID: 1, TargetType: model.TargetVideo, TargetID: 1, Action: model.ActionLike, Day: "2024-02-01"},
		{UserID: 2, TargetType: model.TargetVideo, TargetID: 1, Action: model.ActionLike, Day: "2024-03-09"},
		{UserID: 3, TargetType: model.TargetVideo, TargetID: 1, Action: model.ActionLike, Day: "2024-03-10"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	removed, err := svc.Archive(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var left int64
	require.NoError(t, db.Model(&model.VoteRecord{}).Count(&left).Error)
	assert.EqualValues(t, 2, left)
}
