package models

import "time"

type Comment struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	AuthorID  int64
	PostID    *int64 // nil for a comment detached from any post

	Author User
}

func (c Comment) String() string {
	return c.Text
}
