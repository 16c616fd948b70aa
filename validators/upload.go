// Package validators checks user-supplied input before it reaches the services
package validators

import (
	"errors"
	"regexp"
)

var (
	ErrNoName          = errors.New("no video name provided")
	ErrBadName         = errors.New("video name must be a lowercase slug")
	ErrNoTitle         = errors.New("no title provided")
	ErrTitleTooLong    = errors.New("title is too long")
	ErrBadDuration     = errors.New("duration must be formatted [HH:]mm:ss")
	ErrNoCategory      = errors.New("no category provided")
	ErrDescriptionSize = errors.New("description is too long")
)

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
)

var (
	nameRe     = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)
	durationRe = regexp.MustCompile(`^(\d{1,2}:)?[0-5]?\d:[0-5]\d$`)
)

// UploadMeta is the metadata half of an upload form.
type UploadMeta struct {
	Name        string
	Title       string
	Description string
	Duration    string
	CategoryID  uint
}

// ValidateUploadMeta checks the metadata fields of a new upload.
func ValidateUploadMeta(m *UploadMeta) error {
	switch {
	case m.Name == "":
		return ErrNoName
	case !nameRe.MatchString(m.Name):
		return ErrBadName
	case m.Title == "":
		return ErrNoTitle
	case len(m.Title) > maxTitleLength:
		return ErrTitleTooLong
	case len(m.Description) > maxDescriptionLength:
		return ErrDescriptionSize
	case m.Duration != "" && !durationRe.MatchString(m.Duration):
		return ErrBadDuration
	case m.CategoryID == 0:
		return ErrNoCategory
	}

	return nil
}
