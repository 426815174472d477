package models

import "time"

// UserInfo is the authenticated user's profile as returned by the backend.
type UserInfo struct {
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	WalletAddress  string    `json:"walletAddress"`
	State          string    `json:"state"`
	Bio            string    `json:"bio,omitempty"`
	UserLevel      UserLevel `json:"userLevel,omitempty"`
	KYCHash        string    `json:"kycHash,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	LastLogin      time.Time `json:"lastLogin,omitzero"`
}

// Dashboard bundles the profile with the user's own posts.
type Dashboard struct {
	UserInfo UserInfo `json:"userInfo"`
	Posts    []Post   `json:"posts"`
}

// TotalLikes sums the like counters across the user's posts.
func (d Dashboard) TotalLikes() int {
	var n int
	for _, p := range d.Posts {
		n += p.LikeCount
	}
	return n
}

// TotalDislikes sums the dislike counters across the user's posts.
func (d Dashboard) TotalDislikes() int {
	var n int
	for _, p := range d.Posts {
		n += p.DislikeCount
	}
	return n
}

// TotalComments sums the comment counters across the user's posts.
func (d Dashboard) TotalComments() int {
	var n int
	for _, p := range d.Posts {
		n += p.CommentCount
	}
	return n
}
