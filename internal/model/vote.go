package model

import "time"

// Vote targets and actions. Closed sets, enforced by the service layer.
const (
	TargetVideo   = "video"
	TargetComment = "comment"

	ActionLike    = "like"
	ActionDislike = "dislike"
)

// VoteRecord is an append-only guard entry: the unique index over
// (user, target, action, day) is the whole abuse-prevention mechanism.
// Rows are never updated, only archived after the day boundary passes.
type VoteRecord struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID     uint   `gorm:"uniqueIndex:idx_vote_once;not null" json:"user_id"`
	TargetType string `gorm:"uniqueIndex:idx_vote_once;size:16;not null" json:"target_type"`
	TargetID   uint   `gorm:"uniqueIndex:idx_vote_once;not null" json:"target_id"`
	Action     string `gorm:"uniqueIndex:idx_vote_once;size:16;not null" json:"action"`

	// Calendar day in UTC, formatted 2006-01-02
	Day string `gorm:"uniqueIndex:idx_vote_once;size:10;not null" json:"day"`
}

// VoteDay formats t as the UTC calendar day used in the uniqueness tuple.
func VoteDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
