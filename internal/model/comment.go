package model

import "time"

type Comment struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID uint `gorm:"index;not null" json:"video_id"`
	UserID  uint `gorm:"index;not null" json:"user_id"`

	// Sanitized and rune-capped before insert. Escaping can expand the
	// capped input several times over, so the column carries no size.
	Content string `gorm:"not null" json:"content"`

	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// Score is the comment engagement score.
func (c *Comment) Score() int64 {
	return c.Likes - c.Dislikes
}

// Touched reports whether anyone voted on the comment at all. Untouched
// comments are kept out of the hot bucket when ordering by hottest.
func (c *Comment) Touched() bool {
	return c.Likes+c.Dislikes > 0
}
