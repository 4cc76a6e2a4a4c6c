package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FilterAll disables the category filter.
const FilterAll = "all"

type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortRating   SortKey = "rating"
	SortViews    SortKey = "views"
	SortDuration SortKey = "duration"
)

// Filter is the transient browse state applied on top of the catalog.
type Filter struct {
	Search string
	// CategoryID limits results to one category; empty or FilterAll keeps
	// every category.
	CategoryID string
	Sort       SortKey
}

// Entry is a video annotated with the category that contains it.
type Entry struct {
	Video
	CategoryName string `json:"categoryName"`
}

// Query flattens categories into one sequence of entries, keeps those
// matching f and orders them by f.Sort. Ties keep catalog order and the
// input is never modified.
func Query(categories []Category, f Filter) []Entry {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	entries := make([]Entry, 0)
	for _, c := range categories {
		if f.CategoryID != "" && f.CategoryID != FilterAll && c.ID != f.CategoryID {
			continue
		}
		for _, v := range c.Videos {
			e := Entry{Video: v, CategoryName: c.Name}
			// Containment is authoritative over the record's own field.
			e.CategoryID = c.ID
			if search != "" && !e.matches(search) {
				continue
			}
			entries = append(entries, e)
		}
	}

	if less := lessFunc(f.Sort, entries); less != nil {
		sort.SliceStable(entries, less)
	}
	return entries
}

func (e Entry) matches(search string) bool {
	return strings.Contains(strings.ToLower(e.Title), search) ||
		strings.Contains(strings.ToLower(e.Description), search) ||
		strings.Contains(strings.ToLower(e.CategoryName), search)
}

func lessFunc(key SortKey, e []Entry) func(i, j int) bool {
	switch key {
	case SortNewest:
		return func(i, j int) bool { return e[i].ReleaseDate.After(e[j].ReleaseDate.Time) }
	case SortOldest:
		return func(i, j int) bool { return e[i].ReleaseDate.Before(e[j].ReleaseDate.Time) }
	case SortRating:
		return func(i, j int) bool { return e[i].Rating > e[j].Rating }
	case SortViews:
		return func(i, j int) bool { return e[i].Views > e[j].Views }
	case SortDuration:
		return func(i, j int) bool { return DurationMinutes(e[i].Duration) < DurationMinutes(e[j].Duration) }
	}
	return nil
}

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// DurationMinutes returns the leading integer of a display duration such as
// "45 min". Strings without one count as 0.
func DurationMinutes(s string) int {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
