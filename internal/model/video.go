// Package model defines database models
package model

import "time"

type Video struct {
	ID uint `gorm:"primaryKey;autoIncrement;index" json:"id"`

	// URL-safe slug, also the base name of every transcoded asset
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	// Duration formatted [HH:]mm:ss, taken from the upload probe
	Duration   string `json:"duration"`
	CategoryID uint   `gorm:"index" json:"category_id"`
	UserID     uint   `gorm:"index" json:"user_id"`

	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`

	Tags   TagMap    `json:"tags"`
	Assets AssetList `json:"assets"`

	ThumbsCount  int `json:"thumbs_count"`
	DefaultThumb int `json:"default_thumb"`

	// UTC
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// Score is the engagement score. Always derived, never stored.
func (v *Video) Score() int64 {
	return v.Views + v.Likes - v.Dislikes
}
