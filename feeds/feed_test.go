package feeds

import (
	"context"
	"fmt"
	"testing"
	"time"
	"yatube/storage"
	"yatube/storage/memory"
	"yatube/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *memory.Store
	feed   *Feed
	author models.User
	reader models.User
	other  models.User
	group  models.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	f := &fixture{store: store, feed: NewFeed(store, 10)}
	var err error
	f.author, err = store.CreateUser(ctx, "author", "hash")
	require.NoError(t, err)
	f.reader, err = store.CreateUser(ctx, "reader", "hash")
	require.NoError(t, err)
	f.other, err = store.CreateUser(ctx, "other", "hash")
	require.NoError(t, err)
	f.group, err = store.CreateGroup(ctx, models.Group{Title: "Group", Slug: "group", Description: "About"})
	require.NoError(t, err)
	return f
}

func (f *fixture) post(t *testing.T, author models.User, text string, group *models.Group) models.Post {
	t.Helper()
	newPost := storage.NewPost{Text: text, AuthorID: author.ID}
	if group != nil {
		newPost.GroupID = &group.ID
	}
	post, err := f.store.CreatePost(context.Background(), newPost)
	require.NoError(t, err)
	return post
}

func texts(posts []models.Post) []string {
	result := make([]string, len(posts))
	for i, post := range posts {
		result[i] = post.Text
	}
	return result
}

func TestIndexPaginatesAllPosts(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 13; i++ {
		f.post(t, f.author, fmt.Sprintf("post %d", i), &f.group)
	}

	listing, err := f.feed.Index(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, listing.Page.Items, 10)
	assert.Equal(t, 2, listing.Page.NumPages)
	assert.Equal(t, "post 12", listing.Page.Items[0].Text)

	listing, err = f.feed.Index(context.Background(), "2")
	require.NoError(t, err)
	assert.Len(t, listing.Page.Items, 3)
	assert.Equal(t, "post 0", listing.Page.Items[2].Text)
}

func TestGroupListing(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.author, "in group", &f.group)
	f.post(t, f.author, "no group", nil)

	listing, err := f.feed.Group(context.Background(), "group", "1")
	require.NoError(t, err)
	require.NotNil(t, listing.Group)
	assert.Equal(t, "Group", listing.Group.Title)
	assert.Equal(t, []string{"in group"}, texts(listing.Page.Items))

	_, err = f.feed.Group(context.Background(), "missing", "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.post(t, f.author, "by author", nil)
	f.post(t, f.other, "by other", nil)

	listing, err := f.feed.Profile(ctx, "author", nil, "1")
	require.NoError(t, err)
	assert.Equal(t, "author", listing.Author.Username)
	assert.Equal(t, []string{"by author"}, texts(listing.Page.Items))
	assert.False(t, listing.Following)

	listing, err = f.feed.Profile(ctx, "author", &f.reader, "1")
	require.NoError(t, err)
	assert.False(t, listing.Following)

	f.store.CreateFollow(ctx, f.reader.ID, f.author.ID)
	listing, err = f.feed.Profile(ctx, "author", &f.reader, "1")
	require.NoError(t, err)
	assert.True(t, listing.Following)

	_, err = f.feed.Profile(ctx, "nobody", nil, "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFollowingFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.post(t, f.author, "first by author", nil)
	f.post(t, f.other, "by other", nil)
	f.post(t, f.author, "second by author", &f.group)

	listing, err := f.feed.Following(ctx, &f.reader, "")
	require.NoError(t, err)
	assert.Empty(t, listing.Page.Items)

	f.store.CreateFollow(ctx, f.reader.ID, f.author.ID)
	listing, err = f.feed.Following(ctx, &f.reader, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"second by author", "first by author"}, texts(listing.Page.Items))

	f.store.DeleteFollow(ctx, f.reader.ID, f.author.ID)
	listing, err = f.feed.Following(ctx, &f.reader, "")
	require.NoError(t, err)
	assert.Empty(t, listing.Page.Items)

	_, err = f.feed.Following(ctx, nil, "")
	assert.ErrorIs(t, err, ErrAnonymous)
}

func TestAuthorPostsCount(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.author, "one", nil)
	f.post(t, f.author, "two", nil)
	f.post(t, f.other, "three", nil)

	count, err := f.feed.AuthorPostsCount(context.Background(), f.author.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
