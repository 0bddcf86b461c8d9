package models

import (
	"time"
	"yatube/utils"
)

// ShortStringLength is how many runes of a post's text String returns.
var ShortStringLength = 15

type Post struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	Image     string
	AuthorID  int64
	GroupID   *int64

	// Joined for display
	Author User
	Group  *Group
}

func (p Post) String() string {
	return utils.Truncate(p.Text, ShortStringLength)
}
