package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/voicevote/voicevote/internal/client/feed"
	"github.com/voicevote/voicevote/internal/client/models"
)

// topHashtagCount bounds the 'tags' command output.
const topHashtagCount = 10

// Explore fetches the feed and prints it filtered by category
// (all, trending, recent, critical).
func (a *App) Explore(ctx context.Context, category string) error {
	cat := feed.Category(category)
	switch cat {
	case feed.CategoryAll, feed.CategoryTrending, feed.CategoryRecent, feed.CategoryCritical:
	default:
		fmt.Println("Unknown category:", category)
		fmt.Println("Categories: all, trending, recent, critical")
		return nil
	}

	posts, err := a.fetchFeed(ctx)
	if err != nil {
		return err
	}

	a.printFeed(feed.Filter(posts, "", cat))
	return nil
}

// Search prints posts matching the query. A query starting with '#' searches
// hashtags instead of the caption, description and region fields.
func (a *App) Search(ctx context.Context, query string) error {
	posts, err := a.fetchFeed(ctx)
	if err != nil {
		return err
	}

	var opts []feed.Option
	if strings.HasPrefix(query, "#") {
		opts = append(opts, feed.WithHashtags())
	}

	a.printFeed(feed.Filter(posts, query, feed.CategoryAll, opts...))
	return nil
}

// Hashtags prints the most used hashtags across the current feed.
func (a *App) Hashtags(ctx context.Context) error {
	posts, err := a.fetchFeed(ctx)
	if err != nil {
		return err
	}

	tags := feed.TopHashtags(posts, topHashtagCount)
	if len(tags) == 0 {
		fmt.Println("No hashtags yet")
		return nil
	}
	for i, tag := range tags {
		fmt.Printf("%2d. #%s\n", i+1, tag)
	}
	return nil
}

func (a *App) fetchFeed(ctx context.Context) ([]models.Post, error) {
	posts, err := a.api.AllPosts(ctx)
	if err != nil {
		log.Println(err.Error())
		return nil, err
	}
	return feed.Enrich(posts), nil
}

func (a *App) printFeed(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Println("Nothing here yet")
		return
	}
	for _, p := range posts {
		line := fmt.Sprintf("[%s] %s", p.ID, p.Caption)
		if p.AuthorState != "" {
			line += " @" + p.AuthorState
		}
		line += fmt.Sprintf("  (likes: %d, comments: %d)", p.Likes, p.Comments)
		if p.IsCritical() {
			line += "  !critical"
		}
		fmt.Println(line)
	}
}
