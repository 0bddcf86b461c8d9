package storage

import (
	"context"
	"errors"
	"yatube/storage/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key value")
	ErrSelfFollow = errors.New("user cannot follow themselves")
)

// PostFilter narrows a post listing. Zero-value fields are ignored, so the
// zero PostFilter selects every post.
type PostFilter struct {
	GroupID    int64
	AuthorID   int64
	FollowerID int64 // posts by authors this user follows
}

type NewPost struct {
	Text     string
	Image    string
	AuthorID int64
	GroupID  *int64
}

type PostUpdate struct {
	Text    string
	Image   *string // nil keeps the current image
	GroupID *int64
}

type NewComment struct {
	Text     string
	AuthorID int64
	PostID   *int64
}

// Store is the persistent data model. Every listing it returns is ordered
// newest-first.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateGroup(ctx context.Context, group models.Group) (models.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	DeleteGroup(ctx context.Context, id int64) error

	CreatePost(ctx context.Context, post NewPost) (models.Post, error)
	UpdatePost(ctx context.Context, id int64, update PostUpdate) (models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	CountPosts(ctx context.Context, filter PostFilter) (int, error)
	ListPosts(ctx context.Context, filter PostFilter, offset, limit int) ([]models.Post, error)
	ListPostImages(ctx context.Context) ([]string, error)

	CreateComment(ctx context.Context, comment NewComment) (models.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)

	// CreateFollow reports whether a new edge was stored; an existing edge is
	// not an error.
	CreateFollow(ctx context.Context, userID, authorID int64) (bool, error)
	// DeleteFollow reports whether an edge was removed.
	DeleteFollow(ctx context.Context, userID, authorID int64) (bool, error)
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)

	Stats(ctx context.Context) (models.Stats, error)
	Close()
}
