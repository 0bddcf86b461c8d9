package models

import "time"

// Follow is a directed edge: UserID sees AuthorID's posts in the following feed.
type Follow struct {
	ID        int64
	UserID    int64
	AuthorID  int64
	CreatedAt time.Time
}
