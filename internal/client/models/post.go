// Package models defines client-side data models used by the VoiceVote CLI.
package models

import "time"

// Urgency classifies how pressing a post's issue is.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Post is a civic post as returned by the backend. Feed listings fill the
// engagement counters (Likes, Comments, Views); the detail endpoint fills
// the author block and the split like/dislike counts instead.
type Post struct {
	// ID is the backend-assigned post identifier.
	ID string `json:"postId"`

	// ImageURL points at the pinned media for the post, if any.
	ImageURL string `json:"imageUrl,omitempty"`

	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`

	// Hashtags are stored without the leading '#'.
	Hashtags []string `json:"hashtags,omitempty"`

	// AuthorState is the region the author registered in.
	AuthorState string `json:"authorState,omitempty"`

	// CreatedAt is the server-side creation time. A zero value means the
	// backend did not report one.
	CreatedAt time.Time `json:"createdAt,omitzero"`

	Likes    int     `json:"likes"`
	Comments int     `json:"comments"`
	Views    int     `json:"views"`
	Urgency  Urgency `json:"urgency,omitempty"`

	// Detail-only fields.
	LikeCount      int       `json:"likeCount,omitempty"`
	DislikeCount   int       `json:"dislikeCount,omitempty"`
	CommentCount   int       `json:"commentCount,omitempty"`
	Active         bool      `json:"active,omitempty"`
	AuthorUsername string    `json:"authorUsername,omitempty"`
	WalletAddress  string    `json:"walletAddress,omitempty"`
	AuthorLevel    UserLevel `json:"authorLevel,omitempty"`
}

// UserLevel grades account activity.
type UserLevel string

const (
	UserLevelSuperActive UserLevel = "super_active"
	UserLevelActive      UserLevel = "active"
	UserLevelInactive    UserLevel = "inactive"
)

// IsCritical reports whether the post is flagged at critical urgency.
func (p Post) IsCritical() bool {
	return p.Urgency == UrgencyCritical
}
