package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User represents a registered author identified by a unique username.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=2,max=50"`
	PasswordHash string    `json:"-" validate:"-"`
	CreatedAt    time.Time `json:"created_at" validate:"-"`
}

// Group is a topical bucket posts can optionally belong to.
type Group struct {
	ID          int    `json:"id" validate:"gte=0"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// Post is a blog entry. The author never changes once the post is created;
// text, group and image may be edited by the author.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	GroupID   int       `json:"group_id" validate:"gte=0"` // 0 means no group
	Text      string    `json:"text" validate:"required,min=1"`
	Image     string    `json:"image" validate:"max=500"`
	CreatedAt time.Time `json:"created_at" validate:"-"`
}

// Comment is an append-only remark on a post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,min=1,max=1000"`
	CreatedAt time.Time `json:"created_at" validate:"-"`
}

// Follow is a directed edge: the follower sees the followed user's posts in
// their personal feed. At most one edge exists per ordered pair and a user
// never follows themselves.
type Follow struct {
	FollowerID int       `json:"follower_id" validate:"required,gt=0"`
	FollowedID int       `json:"followed_id" validate:"required,gt=0"`
	CreatedAt  time.Time `json:"created_at" validate:"-"`
}
