package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/voicevote/voicevote/internal/client/enrich"
	"github.com/voicevote/voicevote/internal/client/models"
)

var errNoMediaStore = errors.New("no media store configured, set PINATA_API_KEY")

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Show prints a single post with its engagement counters.
func (a *App) Show(ctx context.Context, postID string) error {
	post, err := a.api.Post(ctx, postID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printPostDetail(post)
	return nil
}

// Like upvotes a post and prints the refreshed counters.
func (a *App) Like(ctx context.Context, postID string) error {
	post, err := a.api.Like(ctx, postID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Liked [%s]: %d likes, %d dislikes\n", post.ID, post.LikeCount, post.DislikeCount)
	return nil
}

// Dislike downvotes a post and prints the refreshed counters.
func (a *App) Dislike(ctx context.Context, postID string) error {
	post, err := a.api.Dislike(ctx, postID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Disliked [%s]: %d likes, %d dislikes\n", post.ID, post.LikeCount, post.DislikeCount)
	if !post.Active {
		fmt.Println("This post has been removed from the feed due to community feedback.")
	}
	return nil
}

// NewPost collects a complaint, uploads its photo and publishes the post.
//
// The caption and hashtags are suggested by the enrichment service when it is
// reachable; the user can override the caption and extend the hashtags. A
// rejection from the service (off-topic content) aborts the post.
func (a *App) NewPost(ctx context.Context) error {
	description, err := getMultiline(a.reader, "Describe the issue", os.Stdout)
	if err != nil {
		return err
	}
	if description == "" {
		fmt.Println("Nothing to post")
		return nil
	}

	caption, hashtags := a.suggestCaption(ctx, description)
	if caption == "" {
		caption, err = getSimpleText(a.reader, "Enter a caption", os.Stdout)
		if err != nil {
			return err
		}
	} else {
		fmt.Println("Suggested caption:", caption)
		override, err := getSimpleText(a.reader, "Press Enter to accept, or type your own caption", os.Stdout)
		if err != nil {
			return err
		}
		if override != "" {
			caption = override
		}
	}

	extra, err := getSimpleText(a.reader, "Extra hashtags (comma separated, optional)", os.Stdout)
	if err != nil {
		return err
	}
	hashtags = append(hashtags, splitHashtags(extra)...)

	imageURL, err := a.uploadImage(ctx)
	if err != nil {
		return err
	}

	if err := a.api.CreatePost(ctx, caption, hashtags, imageURL); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Posted!")
	return nil
}

// suggestCaption asks the enrichment service for a caption. A rejection is
// reported to the user; any other failure degrades to manual input.
func (a *App) suggestCaption(ctx context.Context, description string) (string, []string) {
	s, err := a.suggest.Suggest(ctx, description)
	if err != nil {
		if errors.Is(err, enrich.ErrRejected) {
			fmt.Println("Suggestion service:", err.Error())
		} else {
			log.Printf("Suggestion service unavailable: %s", err.Error())
		}
		return "", nil
	}
	return s.Caption, s.Hashtags
}

func (a *App) uploadImage(ctx context.Context) (string, error) {
	path, err := getSimpleText(a.reader, "Path to a photo of the issue", os.Stdout)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}

	data, err := readFile(path)
	if err != nil {
		log.Printf("error: %v", err)
		return "", err
	}

	url, err := a.media.Upload(ctx, filepath.Base(path), data)
	if err != nil {
		log.Printf("Upload failed: %s", err.Error())
		return "", err
	}
	return url, nil
}

func splitHashtags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func printPostDetail(p models.Post) {
	fmt.Printf("[%s] %s\n", p.ID, p.Caption)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	if len(p.Hashtags) > 0 {
		fmt.Println("#" + strings.Join(p.Hashtags, " #"))
	}
	if p.AuthorUsername != "" {
		author := p.AuthorUsername
		if p.AuthorLevel != "" {
			author += " (" + string(p.AuthorLevel) + ")"
		}
		fmt.Println("By:", author)
	}
	if p.AuthorState != "" {
		fmt.Println("Region:", p.AuthorState)
	}
	if p.ImageURL != "" {
		fmt.Println("Photo:", p.ImageURL)
	}
	fmt.Printf("Likes: %d  Dislikes: %d  Comments: %d\n", p.LikeCount, p.DislikeCount, p.CommentCount)
}
