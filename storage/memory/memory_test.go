package memory

import (
	"context"
	"testing"
	"time"
	"yatube/storage"
	"yatube/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingStore stamps every row one second after the previous one.
func tickingStore() *Store {
	store := NewStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	return store
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	ctx := context.Background()
	store := tickingStore()

	author, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)
	group, err := store.CreateGroup(ctx, models.Group{Title: "Cats", Slug: "cats"})
	require.NoError(t, err)
	post, err := store.CreatePost(ctx, storage.NewPost{Text: "meow", AuthorID: author.ID, GroupID: &group.ID})
	require.NoError(t, err)
	require.NotNil(t, post.Group)

	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	got, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Nil(t, got.Group)
	assert.Equal(t, "meow", got.Text)
}

func TestDeletePostRemovesComments(t *testing.T) {
	ctx := context.Background()
	store := tickingStore()

	author, _ := store.CreateUser(ctx, "leo", "hash")
	post, _ := store.CreatePost(ctx, storage.NewPost{Text: "text", AuthorID: author.ID})
	other, _ := store.CreatePost(ctx, storage.NewPost{Text: "other", AuthorID: author.ID})
	_, err := store.CreateComment(ctx, storage.NewComment{Text: "first", AuthorID: author.ID, PostID: &post.ID})
	require.NoError(t, err)
	_, err = store.CreateComment(ctx, storage.NewComment{Text: "kept", AuthorID: author.ID, PostID: &other.ID})
	require.NoError(t, err)

	require.NoError(t, store.DeletePost(ctx, post.ID))

	comments, err := store.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	stats, _ := store.Stats(ctx)
	assert.Equal(t, int64(1), stats.Comments)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	store := tickingStore()

	author, _ := store.CreateUser(ctx, "author", "hash")
	reader, _ := store.CreateUser(ctx, "reader", "hash")
	post, _ := store.CreatePost(ctx, storage.NewPost{Text: "text", AuthorID: author.ID})
	store.CreateComment(ctx, storage.NewComment{Text: "nice", AuthorID: reader.ID, PostID: &post.ID})
	store.CreateFollow(ctx, reader.ID, author.ID)

	require.NoError(t, store.DeleteUser(ctx, author.ID))

	stats, _ := store.Stats(ctx)
	assert.Equal(t, models.Stats{Users: 1}, stats)
}

func TestListPostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := tickingStore()

	author, _ := store.CreateUser(ctx, "leo", "hash")
	for _, text := range []string{"one", "two", "three"} {
		store.CreatePost(ctx, storage.NewPost{Text: text, AuthorID: author.ID})
	}

	posts, err := store.ListPosts(ctx, storage.PostFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "three", posts[0].Text)
	assert.Equal(t, "one", posts[2].Text)
	assert.Equal(t, "leo", posts[0].Author.Username)
	assert.Empty(t, posts[0].Author.PasswordHash)

	page, _ := store.ListPosts(ctx, storage.PostFilter{}, 2, 10)
	require.Len(t, page, 1)
	assert.Equal(t, "one", page[0].Text)

	empty, _ := store.ListPosts(ctx, storage.PostFilter{}, 5, 10)
	assert.Empty(t, empty)
}

func TestFollowEdges(t *testing.T) {
	ctx := context.Background()
	store := tickingStore()

	user, _ := store.CreateUser(ctx, "user", "hash")
	author, _ := store.CreateUser(ctx, "author", "hash")

	created, err := store.CreateFollow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateFollow(ctx, user.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = store.CreateFollow(ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, storage.ErrSelfFollow)

	following, _ := store.IsFollowing(ctx, user.ID, author.ID)
	assert.True(t, following)
	following, _ = store.IsFollowing(ctx, author.ID, user.ID)
	assert.False(t, following)

	deleted, _ := store.DeleteFollow(ctx, user.ID, author.ID)
	assert.True(t, deleted)
	deleted, _ = store.DeleteFollow(ctx, user.ID, author.ID)
	assert.False(t, deleted)
}

func TestUniqueness(t *testing.T) {
	ctx := context.Background()
	store := tickingStore()

	_, err := store.CreateUser(ctx, "leo", "hash")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "leo", "hash")
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	_, err = store.CreateGroup(ctx, models.Group{Title: "Cats", Slug: "cats"})
	require.NoError(t, err)
	_, err = store.CreateGroup(ctx, models.Group{Title: "More cats", Slug: "cats"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}
