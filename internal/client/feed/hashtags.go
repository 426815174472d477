package feed

import (
	"sort"

	"github.com/voicevote/voicevote/internal/client/models"
)

// TopHashtags tallies every hashtag across posts and returns the n most
// frequent tags, most frequent first. Ties keep first-encounter order. The
// caller is expected to pass the enriched full corpus, not a filtered view.
func TopHashtags(posts []models.Post, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, p := range posts {
		for _, tag := range p.Hashtags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if n >= 0 && len(order) > n {
		order = order[:n]
	}
	return order
}
