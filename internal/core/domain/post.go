package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotAuthorized = errors.New("not authorized")
)

// Post is a user-authored text submission. UserID never changes once set.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is a post as returned by the listing: joined with its author's
// username and its score.
type PostView struct {
	Post
	Username string `json:"username"`
	Votes    int64  `json:"votes"`
}
