package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func date(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func testCatalog(t *testing.T) []Category {
	return []Category{
		{ID: "1", Name: "Marketing", Videos: []Video{
			{ID: "m1", Title: "Social media listings", Description: "Instagram for agents", Duration: "30 min", Rating: 4.2, Views: 120, ReleaseDate: date(t, "2024-03-01"), CategoryID: "1"},
			{ID: "m2", Title: "Open houses", Description: "Planning the weekend", Duration: "12 min", Rating: 4.8, Views: 40, ReleaseDate: date(t, "2024-05-10"), CategoryID: "1"},
		}},
		{ID: "2", Name: "Negotiation", Videos: []Video{
			{ID: "n1", Title: "Handling objections", Description: "Price talks", Duration: "45 min", Rating: 4.2, Views: 900, ReleaseDate: date(t, "2023-11-20"), CategoryID: "2"},
			{ID: "n2", Title: "Closing techniques", Description: "Marketing your offer", Duration: "1 hour", Rating: 3.9, Views: 40, ReleaseDate: date(t, "2024-05-10"), CategoryID: "2"},
		}},
		{ID: "3", Name: "Empty", Videos: []Video{}},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestQueryFlatten(t *testing.T) {
	got := Query(testCatalog(t), Filter{CategoryID: FilterAll})

	if diff := cmp.Diff([]string{"m1", "m2", "n1", "n2"}, ids(got)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if got[2].CategoryName != "Negotiation" || got[2].CategoryID != "2" {
		t.Fatalf("entry not annotated with its category: %+v", got[2])
	}
}

func TestQuerySearch(t *testing.T) {
	cats := testCatalog(t)

	for _, q := range []string{"marketing", "MARKETING", "price", "open", "zzz"} {
		got := Query(cats, Filter{Search: q})
		lq := strings.ToLower(q)

		matched := 0
		for _, c := range cats {
			for _, v := range c.Videos {
				if strings.Contains(strings.ToLower(v.Title), lq) ||
					strings.Contains(strings.ToLower(v.Description), lq) ||
					strings.Contains(strings.ToLower(c.Name), lq) {
					matched++
				}
			}
		}
		if len(got) != matched {
			t.Errorf("search %q: expected %d results, got %d", q, matched, len(got))
		}
	}

	// "marketing" matches a category name and a description.
	got := Query(cats, Filter{Search: "Marketing"})
	if diff := cmp.Diff([]string{"m1", "m2", "n2"}, ids(got)); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}

	if got := Query(cats, Filter{Search: "   "}); len(got) != 4 {
		t.Fatalf("blank search should not filter, got %d results", len(got))
	}
}

func TestQueryCategoryFilter(t *testing.T) {
	got := Query(testCatalog(t), Filter{CategoryID: "2"})
	for _, e := range got {
		if e.CategoryID != "2" {
			t.Fatalf("entry %s has category %s", e.ID, e.CategoryID)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}

	if got := Query(testCatalog(t), Filter{CategoryID: "missing"}); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
	all := ids(Query(testCatalog(t), Filter{CategoryID: FilterAll}))
	if diff := cmp.Diff(all, ids(Query(testCatalog(t), Filter{}))); diff != "" {
		t.Fatalf("empty category filter should match \"all\" (-all +empty):\n%s", diff)
	}
}

func TestQuerySort(t *testing.T) {
	tests := []struct {
		key SortKey
		exp []string
	}{
		{SortNewest, []string{"m2", "n2", "m1", "n1"}},
		{SortOldest, []string{"n1", "m1", "m2", "n2"}},
		{SortRating, []string{"m2", "m1", "n1", "n2"}},
		{SortViews, []string{"n1", "m1", "m2", "n2"}},
		{SortDuration, []string{"n2", "m2", "m1", "n1"}},
		{"popularity", []string{"m1", "m2", "n1", "n2"}},
		{"", []string{"m1", "m2", "n1", "n2"}},
	}

	for _, tt := range tests {
		got := Query(testCatalog(t), Filter{Sort: tt.key})
		if diff := cmp.Diff(tt.exp, ids(got)); diff != "" {
			t.Errorf("sort %q (-want +got):\n%s", tt.key, diff)
		}
	}
}

func TestQueryRatingDescending(t *testing.T) {
	got := Query(testCatalog(t), Filter{Sort: SortRating})
	for i := 1; i < len(got); i++ {
		if got[i-1].Rating < got[i].Rating {
			t.Fatalf("ratings out of order at %d: %v < %v", i, got[i-1].Rating, got[i].Rating)
		}
	}
}

func TestQueryIdempotentAndPure(t *testing.T) {
	cats := testCatalog(t)
	before := testCatalog(t)
	f := Filter{Search: "o", Sort: SortViews}

	first := Query(cats, f)
	second := Query(cats, f)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated query differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, cats); diff != "" {
		t.Fatalf("query modified its input (-before +after):\n%s", diff)
	}
}

func TestQueryViewsScenario(t *testing.T) {
	cats := []Category{
		{ID: "a", Name: "A", Videos: []Video{{ID: "va", Rating: 4.0, Views: 10}}},
		{ID: "b", Name: "B", Videos: []Video{{ID: "vb", Rating: 4.8, Views: 500}}},
	}

	got := Query(cats, Filter{CategoryID: FilterAll, Sort: SortViews})
	if len(got) != 2 || got[0].ID != "vb" {
		t.Fatalf("expected B's video first, got %v", ids(got))
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := map[string]int{
		"45 min":  45,
		" 5 min":  5,
		"1 hour":  1,
		"120":     120,
		"unknown": 0,
		"":        0,
	}
	for in, exp := range tests {
		if got := DurationMinutes(in); got != exp {
			t.Errorf("DurationMinutes(%q): expected %d, got %d", in, exp, got)
		}
	}
}
