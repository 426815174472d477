// Package feed filters and ranks civic posts locally. The backend only ships
// the raw corpus; the explore and search views derive their ordering, category
// cuts and the popular-hashtag index here. Every function is pure: the input
// slice is never reordered or mutated.
package feed

import (
	"sort"
	"strings"
	"time"

	"github.com/voicevote/voicevote/internal/client/models"
)

// Category selects one of the view filters.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryTrending Category = "trending"
	CategoryRecent   Category = "recent"
	CategoryCritical Category = "critical"
)

// TrendingCap bounds the trending view.
const TrendingCap = 12

// FallbackHashtags are shown on posts that carry none of their own.
var FallbackHashtags = []string{"community", "issue", "anonymous"}

// Enrich returns a copy of posts with display defaults applied: posts without
// hashtags get FallbackHashtags. Engagement counters and urgency come from the
// backend untouched.
func Enrich(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if len(out[i].Hashtags) == 0 {
			out[i].Hashtags = FallbackHashtags
		}
	}
	return out
}

type options struct {
	hashtags bool
}

type Option func(*options)

// WithHashtags switches query matching to the search-view behavior: the query
// is split on whitespace, '#' prefixes are stripped, and terms also match
// hashtag text. Any term matching is enough.
func WithHashtags() Option {
	return func(o *options) { o.hashtags = true }
}

// Filter applies the query and then the category to posts, returning a new
// slice. Sorts are stable, so equally-ranked posts keep their feed order.
func Filter(posts []models.Post, query string, cat Category, opts ...Option) []models.Post {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	out := make([]models.Post, 0, len(posts))
	if o.hashtags {
		terms := splitTerms(query)
		for _, p := range posts {
			if matchesAnyTerm(p, terms) {
				out = append(out, p)
			}
		}
	} else {
		q := strings.ToLower(strings.TrimSpace(query))
		for _, p := range posts {
			if matchesSubstring(p, q) {
				out = append(out, p)
			}
		}
	}

	switch cat {
	case CategoryTrending:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
		if len(out) > TrendingCap {
			out = out[:TrendingCap]
		}
	case CategoryRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return createdAtOrEpoch(out[i]).After(createdAtOrEpoch(out[j]))
		})
	case CategoryCritical:
		kept := out[:0]
		for _, p := range out {
			if p.IsCritical() {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	return out
}

// matchesSubstring is the explore-view match: case-insensitive substring over
// caption, description and author state. An empty query matches everything.
func matchesSubstring(p models.Post, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Caption), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.AuthorState), q)
}

func splitTerms(query string) []string {
	var terms []string
	for _, t := range strings.Fields(query) {
		t = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t, "#", "")))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func matchesAnyTerm(p models.Post, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	parts := append([]string{p.Caption, p.Description}, p.Hashtags...)
	text := strings.ToLower(strings.Join(parts, " "))
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// createdAtOrEpoch pins posts without a creation time to the Unix epoch so
// they sink to the bottom of the recent view.
func createdAtOrEpoch(p models.Post) time.Time {
	if p.CreatedAt.IsZero() {
		return time.Unix(0, 0)
	}
	return p.CreatedAt
}
