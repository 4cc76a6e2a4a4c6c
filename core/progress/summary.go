package progress

import (
	"sort"

	"github.com/irsalhamdi/realty-training/core/catalog"
)

// RecentLimit caps Dashboard.Recent.
const RecentLimit = 5

// Summarize builds a user's dashboard from the catalog and their progress
// records. Records of videos no longer in the catalog are ignored.
func Summarize(email string, categories []catalog.Category, records []Progress) Dashboard {
	byVideo := make(map[string]Progress, len(records))
	for _, p := range records {
		byVideo[p.VideoID] = p
	}

	d := Dashboard{
		UserEmail:  email,
		Categories: make([]CategoryStats, 0, len(categories)),
		Recent:     []Progress{},
	}

	for _, c := range categories {
		cs := CategoryStats{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			TotalVideos:  len(c.Videos),
		}

		for _, v := range c.Videos {
			p, ok := byVideo[v.ID]
			if !ok {
				continue
			}
			cs.Started++
			if p.Completed {
				cs.Completed++
			}
			d.TotalWatchTime += p.WatchTime
			d.Recent = append(d.Recent, p)
		}
		cs.CompletionRate = Rate(cs.Completed, cs.TotalVideos)

		d.TotalVideos += cs.TotalVideos
		d.VideosStarted += cs.Started
		d.VideosCompleted += cs.Completed
		d.Categories = append(d.Categories, cs)
	}
	d.CompletionRate = Rate(d.VideosCompleted, d.TotalVideos)

	sort.SliceStable(d.Recent, func(i, j int) bool {
		return d.Recent[i].UpdatedAt.After(d.Recent[j].UpdatedAt)
	})
	if len(d.Recent) > RecentLimit {
		d.Recent = d.Recent[:RecentLimit]
	}
	return d
}
