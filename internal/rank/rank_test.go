package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tubehub/catalog-api/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func titles(vs []model.Video) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Title
	}
	return out
}

func TestVideoScore(t *testing.T) {
	v := model.Video{Views: 10, Likes: 3, Dislikes: 5}
	assert.EqualValues(t, 8, v.Score())

	// Score may go negative
	v = model.Video{Views: 0, Likes: 1, Dislikes: 4}
	assert.EqualValues(t, -3, v.Score())
}

func TestVideosHottest(t *testing.T) {
	// A and B share a day, B has the higher score. C is older but carries a
	// huge score; recency still wins.
	vs := []model.Video{
		{Title: "A", CreatedAt: day("2024-01-02"), Views: 5},
		{Title: "B", CreatedAt: day("2024-01-02"), Views: 9},
		{Title: "C", CreatedAt: day("2024-01-01"), Views: 100},
	}

	Videos(vs, Hottest)
	assert.Equal(t, []string{"B", "A", "C"}, titles(vs))
}

func TestVideosNewest(t *testing.T) {
	vs := []model.Video{
		{Title: "C", CreatedAt: day("2024-01-01")},
		{Title: "A", CreatedAt: day("2024-01-02")},
		{Title: "B", CreatedAt: day("2024-01-02")},
	}

	Videos(vs, Newest)

	// A and B tie on the date. The order between them is unspecified, C is
	// strictly last.
	assert.Equal(t, "C", vs[2].Title)
	assert.ElementsMatch(t, []string{"A", "B"}, titles(vs[:2]))
}

func TestVideosAlphabetical(t *testing.T) {
	vs := []model.Video{
		{Title: "zebra", CreatedAt: day("2024-01-02"), Views: 100},
		{Title: "apple", CreatedAt: day("2024-01-01")},
		{Title: "mango", CreatedAt: day("2024-01-03")},
	}

	Videos(vs, Alphabetical)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, titles(vs))
}

func TestVideosUnknownModeLeavesOrder(t *testing.T) {
	vs := []model.Video{
		{Title: "first"},
		{Title: "second"},
	}

	Videos(vs, Mode("bogus"))
	assert.Equal(t, []string{"first", "second"}, titles(vs))
}

func TestVideosHottestTiesStayTogether(t *testing.T) {
	// Full ties are randomized but never escape their rank bucket.
	vs := []model.Video{
		{Title: "tie1", CreatedAt: day("2024-01-02"), Views: 5},
		{Title: "tie2", CreatedAt: day("2024-01-02"), Views: 5},
		{Title: "old", CreatedAt: day("2024-01-01"), Views: 50},
	}

	for range 10 {
		Videos(vs, Hottest)
		assert.Equal(t, "old", vs[2].Title)
		assert.ElementsMatch(t, []string{"tie1", "tie2"}, titles(vs[:2]))
	}
}

func TestCommentsHottest(t *testing.T) {
	cs := []model.Comment{
		{Content: "untouched-new", CreatedAt: day("2024-01-05")},
		{Content: "low", CreatedAt: day("2024-01-03"), Likes: 1},
		{Content: "high", CreatedAt: day("2024-01-01"), Likes: 8, Dislikes: 2},
		{Content: "untouched-old", CreatedAt: day("2024-01-02")},
	}

	Comments(cs, Hottest)

	got := make([]string, len(cs))
	for i, c := range cs {
		got[i] = c.Content
	}

	// Voted comments ordered by score, untouched ones trail newest-first
	assert.Equal(t, []string{"high", "low", "untouched-new", "untouched-old"}, got)
}

func TestCommentsHottestEqualScoreNewestFirst(t *testing.T) {
	cs := []model.Comment{
		{Content: "older", CreatedAt: day("2024-01-01"), Likes: 3},
		{Content: "newer", CreatedAt: day("2024-01-02"), Likes: 3},
	}

	Comments(cs, Hottest)
	assert.Equal(t, "newer", cs[0].Content)
}

func TestCommentsNewest(t *testing.T) {
	cs := []model.Comment{
		{Content: "old", CreatedAt: day("2024-01-01"), Likes: 10},
		{Content: "new", CreatedAt: day("2024-01-03")},
		{Content: "mid", CreatedAt: day("2024-01-02"), Dislikes: 4},
	}

	Comments(cs, Newest)
	assert.Equal(t, "new", cs[0].Content)
	assert.Equal(t, "mid", cs[1].Content)
	assert.Equal(t, "old", cs[2].Content)
}
