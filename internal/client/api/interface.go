// Package api talks to the VoiceVote REST backend. Every response is wrapped
// in the backend's envelope ({success, message?, ...payload}); failures are
// mapped to the sentinel errors in internal/common so callers can branch on
// errors.Is.
package api

import (
	"context"

	"github.com/voicevote/voicevote/internal/client/models"
)

// RegisterRequest is the final registration payload. KYCHash carries the
// attestation transaction hash.
type RegisterRequest struct {
	Nullifier     string `json:"nullifier"`
	KYCHash       string `json:"kycHash"`
	WalletAddress string `json:"walletAddress"`
	State         string `json:"state"`
	Password      string `json:"password"`
}

// NullifierCheck is the backend's verdict on a nullifier.
type NullifierCheck struct {
	OK      bool
	Message string
}

type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	// CheckNullifier asks the backend whether the nullifier is usable.
	// A negative verdict is not an error; it is reported in the result.
	CheckNullifier(ctx context.Context, nullifier string) (NullifierCheck, error)

	// RegisterUser completes registration with the attested identity.
	RegisterUser(ctx context.Context, req RegisterRequest) error

	// AllPosts fetches the full post feed.
	AllPosts(ctx context.Context) ([]models.Post, error)

	// Post fetches one post with its detail fields.
	Post(ctx context.Context, postID string) (models.Post, error)

	// CreatePost publishes a new post with already-uploaded media.
	CreatePost(ctx context.Context, caption string, hashtags []string, imageURL string) error

	// Like and Dislike register a reaction and return the updated post.
	Like(ctx context.Context, postID string) (models.Post, error)
	Dislike(ctx context.Context, postID string) (models.Post, error)

	// Dashboard fetches the authenticated user's profile and posts.
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

// TokenSource supplies the bearer token for authenticated calls and is told
// when the backend rejects it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}
