// Package storage holds raw uploads between upload time and activation.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// Staging stores raw uploads until ingestion finishes. Keys are opaque to
// the callers; activation removes the staged object, failed ingestions keep
// it around for operator retry.
type Staging interface {
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
}

// New picks the staging backend from the storage.type config key.
func New() (Staging, error) {
	switch t := viper.GetString("storage.type"); t {
	case "s3":
		return NewS3Staging()
	case "local":
		return NewLocalStaging(viper.GetString("storage.local_path"))
	default:
		return nil, fmt.Errorf("invalid storage type %q", t)
	}
}
