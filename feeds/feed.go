package feeds

import (
	"context"
	"errors"
	"yatube/storage"
	"yatube/storage/models"
)

var ErrAnonymous = errors.New("authentication required")

type postSource struct {
	store  storage.Store
	filter storage.PostFilter
}

func (s postSource) Count(ctx context.Context) (int, error) {
	return s.store.CountPosts(ctx, s.filter)
}

func (s postSource) Slice(ctx context.Context, offset, limit int) ([]models.Post, error) {
	return s.store.ListPosts(ctx, s.filter, offset, limit)
}

type Feed struct {
	store    storage.Store
	pageSize int
}

func NewFeed(store storage.Store, pageSize int) *Feed {
	return &Feed{
		store:    store,
		pageSize: pageSize,
	}
}

func (f *Feed) paginate(ctx context.Context, filter storage.PostFilter, rawPage string) (Page[models.Post], error) {
	return Paginate[models.Post](ctx, postSource{f.store, filter}, rawPage, f.pageSize)
}

func (f *Feed) Index(ctx context.Context, rawPage string) (Listing, error) {
	page, err := f.paginate(ctx, storage.PostFilter{}, rawPage)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Page: page}, nil
}

func (f *Feed) Group(ctx context.Context, slug string, rawPage string) (Listing, error) {
	group, err := f.store.GetGroupBySlug(ctx, slug)
	if err != nil {
		return Listing{}, err
	}

	page, err := f.paginate(ctx, storage.PostFilter{GroupID: group.ID}, rawPage)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Page: page, Group: &group}, nil
}

// Profile lists an author's posts. Following is false for anonymous viewers.
func (f *Feed) Profile(ctx context.Context, username string, viewer *models.User, rawPage string) (Listing, error) {
	author, err := f.store.GetUserByUsername(ctx, username)
	if err != nil {
		return Listing{}, err
	}
	author.PasswordHash = ""

	page, err := f.paginate(ctx, storage.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return Listing{}, err
	}

	following := false
	if viewer != nil {
		following, err = f.store.IsFollowing(ctx, viewer.ID, author.ID)
		if err != nil {
			return Listing{}, err
		}
	}

	return Listing{Page: page, Author: &author, Following: following}, nil
}

// Following lists posts by every author the viewer follows.
func (f *Feed) Following(ctx context.Context, viewer *models.User, rawPage string) (Listing, error) {
	if viewer == nil {
		return Listing{}, ErrAnonymous
	}

	page, err := f.paginate(ctx, storage.PostFilter{FollowerID: viewer.ID}, rawPage)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Page: page}, nil
}

// AuthorPostsCount backs the "posts by this author" counter on the detail page.
func (f *Feed) AuthorPostsCount(ctx context.Context, authorID int64) (int, error) {
	return f.store.CountPosts(ctx, storage.PostFilter{AuthorID: authorID})
}
