package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Superuser    bool   `json:"superuser" db:"superuser"`
	Disabled     bool   `json:"disabled" db:"disabled"`
}

type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Published bool      `json:"published" db:"published"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Derived per query, never stored.
	CommentCount int     `json:"commentCount" db:"comment_count"`
	LikeCount    int     `json:"likeCount" db:"like_count"`
	HeatScore    float64 `json:"heatScore" db:"-"`

	Images []PostImage `json:"images,omitempty" db:"-"`
}

// ComputeHeat fills HeatScore from the loaded counters.
func (p *Post) ComputeHeat() {
	p.HeatScore = 0.7*float64(p.LikeCount) + 0.3*float64(p.CommentCount)
}

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	RootID    *int64    `json:"rootId,omitempty" db:"root_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentNode is a comment with its reply subtree attached.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

type Like struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Content struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Text        string `json:"text" db:"text"`
	Published   bool   `json:"published" db:"published"`
	Tags        string `json:"-" db:"tags"`
	UserID      int64  `json:"userId" db:"user_id"`
	CreatedTime string `json:"createdTime" db:"created_time"`
}

// ContentResponse is the serialized form of Content: tags are exposed as a
// list instead of the comma-joined column value.
type ContentResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Text        string   `json:"text"`
	Published   bool     `json:"published"`
	Tags        []string `json:"tags"`
	UserID      int64    `json:"userId"`
	CreatedTime string   `json:"createdTime"`
}

func (c Content) Response() ContentResponse {
	var tags []string
	if c.Tags != "" {
		tags = strings.Split(c.Tags, ",")
	}
	return ContentResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Text:        c.Text,
		Published:   c.Published,
		Tags:        tags,
		UserID:      c.UserID,
		CreatedTime: c.CreatedTime,
	}
}

type PostImage struct {
	ID         int64     `json:"id" db:"id"`
	PostID     int64     `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
