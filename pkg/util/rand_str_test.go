package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandStr(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		s := RandStr(10)
		assert.Len(t, s, 10)

		for _, r := range s {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
		}

		seen[s] = true
	}

	assert.Greater(t, len(seen), 1)
}
