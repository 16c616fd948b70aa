// Package rank orders already-filtered catalog rows by engagement.
package rank

import (
	"math/rand"
	"sort"

	"tubehub/catalog-api/internal/model"
)

// Mode selects how a result set is ordered.
type Mode string

const (
	// Hottest puts the newest most appreciated items first
	Hottest Mode = "hottest"
	// Newest is purely chronological
	Newest Mode = "newest"
	// Alphabetical sorts by title only
	Alphabetical Mode = "alphabetical"
)

// ValidModes lists every mode accepted from the outside.
var ValidModes = map[Mode]bool{
	Hottest:      true,
	Newest:       true,
	Alphabetical: true,
}

// videoLess is a named comparator over videos, parameterized by the sort
// keys it reads. One definition per mode, no call-site closures.
type videoLess func(a, b *model.Video) bool

var videoComparators = map[Mode]videoLess{
	Hottest: func(a, b *model.Video) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Score() > b.Score()
	},
	Newest: func(a, b *model.Video) bool {
		return a.CreatedAt.After(b.CreatedAt)
	},
	Alphabetical: func(a, b *model.Video) bool {
		return a.Title < b.Title
	},
}

// Videos sorts vs in place. Unknown modes leave the slice untouched.
//
// Hottest deliberately randomizes the order among full ties (same day, same
// score): the slice is shuffled first and the stable sort keeps the shuffled
// order wherever the comparator sees equal keys.
func Videos(vs []model.Video, mode Mode) {
	less, ok := videoComparators[mode]
	if !ok {
		return
	}

	if mode == Hottest {
		rand.Shuffle(len(vs), func(i, j int) {
			vs[i], vs[j] = vs[j], vs[i]
		})
	}

	sort.SliceStable(vs, func(i, j int) bool {
		return less(&vs[i], &vs[j])
	})
}

type commentLess func(a, b *model.Comment) bool

var commentComparators = map[Mode]commentLess{
	Hottest: func(a, b *model.Comment) bool {
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.CreatedAt.After(b.CreatedAt)
	},
	Newest: func(a, b *model.Comment) bool {
		return a.CreatedAt.After(b.CreatedAt)
	},
}

// Comments sorts cs in place. Hottest first splits off comments nobody has
// voted on: the touched ones are ordered by score then recency and the
// untouched ones follow, newest first.
func Comments(cs []model.Comment, mode Mode) {
	less, ok := commentComparators[mode]
	if !ok {
		return
	}

	if mode == Hottest {
		touched := make([]model.Comment, 0, len(cs))
		var untouched []model.Comment

		for _, c := range cs {
			if c.Touched() {
				touched = append(touched, c)
			} else {
				untouched = append(untouched, c)
			}
		}

		sort.SliceStable(touched, func(i, j int) bool {
			return less(&touched[i], &touched[j])
		})
		sort.SliceStable(untouched, func(i, j int) bool {
			return untouched[i].CreatedAt.After(untouched[j].CreatedAt)
		})

		copy(cs, touched)
		copy(cs[len(touched):], untouched)
		return
	}

	sort.SliceStable(cs, func(i, j int) bool {
		return less(&cs[i], &cs[j])
	})
}
