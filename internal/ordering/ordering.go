// Package ordering holds the bespoke sort policies: per-category episode
// ordering and the generic name/date sort used by star and charity lists.
package ordering

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/media-platform/internal/catalog"
)

// recentlyAddedTitle triggers the date-desc base ordering.
const recentlyAddedTitle = "Recently Added"

// Episodes lacking a parseable per-category order entry sort with this
// key: after every explicitly ordered episode, but in a stable position
// relative to each other.
const unorderedKey = 999

// randIntn is swappable in tests.
var randIntn = rand.Intn

// OrderEpisodesForCategory sorts episodes in place for one category.
// A base ordering is established first (date-desc for "Recently Added",
// an unbiased shuffle for random categories, the incoming order
// otherwise), then the explicit per-category override runs as a second
// stable pass over that base. Episodes without an override entry keep
// their base order relative to each other.
func OrderEpisodesForCategory(cat catalog.Category, eps []catalog.Episode) {
	switch {
	case cat.Title == recentlyAddedTitle:
		sort.SliceStable(eps, func(i, j int) bool { return eps[i].CreatedAt > eps[j].CreatedAt })
	case cat.Random:
		shuffle(eps)
	}
	applyCategoryOrder(cat.ID, eps)
}

func applyCategoryOrder(categoryID string, eps []catalog.Episode) {
	if categoryID == "" {
		return
	}
	sort.SliceStable(eps, func(i, j int) bool {
		return categoryOrderKey(categoryID, eps[i]) < categoryOrderKey(categoryID, eps[j])
	})
}

// categoryOrderKey finds the episode's "<categoryId>-<order>" entry for
// the target category and returns the integer after the last dash.
func categoryOrderKey(categoryID string, ep catalog.Episode) int {
	for _, entry := range ep.OrderCategory {
		if !strings.Contains(entry, categoryID) {
			continue
		}
		idx := strings.LastIndex(entry, "-")
		if idx < 0 || idx == len(entry)-1 {
			continue
		}
		n, err := strconv.Atoi(entry[idx+1:])
		if err != nil {
			continue
		}
		return n
	}
	return unorderedKey
}

// shuffle is a Fisher–Yates shuffle, last index down to 1.
func shuffle(eps []catalog.Episode) {
	for i := len(eps) - 1; i > 0; i-- {
		j := randIntn(i + 1)
		eps[i], eps[j] = eps[j], eps[i]
	}
}

// SortStars orders stars by the sort spec (see sortByNameOrDate).
func SortStars(spec string, stars []catalog.Star) {
	sortByNameOrDate(spec, stars,
		func(s catalog.Star) string { return s.Title },
		func(s catalog.Star) string { return s.PublishDate })
}

// SortCharities orders charities by the sort spec.
func SortCharities(spec string, cs []catalog.Charity) {
	sortByNameOrDate(spec, cs,
		func(c catalog.Charity) string { return c.Title },
		func(c catalog.Charity) string { return c.PublishDate })
}

// sortByNameOrDate applies a "[-|+]name|date" sort spec: "name" compares
// titles with English collation, "date" compares publish dates coerced to
// integers with 0 for missing/non-numeric values. An empty spec means
// "-date" (newest first).
func sortByNameOrDate[T any](spec string, items []T, title func(T) string, publishDate func(T) string) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "-date"
	}
	desc := strings.HasPrefix(spec, "-")
	field := strings.TrimPrefix(strings.TrimPrefix(spec, "-"), "+")

	switch field {
	case "name":
		col := collate.New(language.English)
		sort.SliceStable(items, func(i, j int) bool {
			c := col.CompareString(title(items[i]), title(items[j]))
			if desc {
				return c > 0
			}
			return c < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := dateKey(publishDate(items[i])), dateKey(publishDate(items[j]))
			if desc {
				return a > b
			}
			return a < b
		})
	}
}

func dateKey(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
