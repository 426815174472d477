package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Explore(ctx context.Context, category string) error
	Search(ctx context.Context, query string) error
	Hashtags(ctx context.Context) error
	Show(ctx context.Context, postID string) error
	Like(ctx context.Context, postID string) error
	Dislike(ctx context.Context, postID string) error
	NewPost(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the VoiceVote CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - register           — anonymous registration wizard
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - explore [category] — browse the feed (all, trending, recent, critical)
//	  - search <query>     — search posts, "#term" searches hashtags
//	  - tags               — show trending hashtags
//	  - show <id>          — show a single post
//	  - like <id>          — upvote a post
//	  - dislike <id>       — downvote a post
//	  - newpost            — publish a complaint
//	  - profile            — show your dashboard
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vv> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (e)xplore, search, tags, show, like, dislike, newpost, profile, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "e", "explore":
			category := "all"
			if len(args) > 0 {
				category = args[0]
			}
			_ = a.Explore(ctx, category)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "tags":
			_ = a.Hashtags(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <id>")
				continue
			}
			_ = a.Like(ctx, args[0])

		case "dislike":
			if len(args) == 0 {
				printlnFn("Usage: dislike <id>")
				continue
			}
			_ = a.Dislike(ctx, args[0])

		case "newpost":
			_ = a.NewPost(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
