package model

import "time"

type Post struct {
	ID        int64
	Title     string
	Body      string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostWithAuthor is a post joined with its owner's identity, as shown on
// the dashboard.
type PostWithAuthor struct {
	Post
	AuthorName  string
	AuthorEmail string
}
