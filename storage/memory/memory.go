// Package memory is an in-process storage.Store used for local runs and tests.
// It applies the same cascade and set-null rules as the Postgres schema.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"
	"yatube/storage"
	"yatube/storage/models"
)

type followKey struct {
	userID   int64
	authorID int64
}

type Store struct {
	mu     sync.RWMutex
	nextID int64

	// Now stamps created rows. Tests may replace it to control ordering.
	Now func() time.Time

	users    map[int64]models.User
	groups   map[int64]models.Group
	posts    map[int64]models.Post
	comments map[int64]models.Comment
	follows  map[followKey]models.Follow
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Now:      time.Now,
		users:    make(map[int64]models.User),
		groups:   make(map[int64]models.Group),
		posts:    make(map[int64]models.Post),
		comments: make(map[int64]models.Comment),
		follows:  make(map[followKey]models.Follow),
	}
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return models.User{}, storage.ErrDuplicate
		}
	}
	user := models.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.Now(),
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// DeleteUser cascades to the user's posts, comments and follow edges.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	for postID, post := range s.posts {
		if post.AuthorID == id {
			s.deletePostLocked(postID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.AuthorID == id {
			delete(s.comments, commentID)
		}
	}
	for key := range s.follows {
		if key.userID == id || key.authorID == id {
			delete(s.follows, key)
		}
	}
	return nil
}

func (s *Store) CreateGroup(_ context.Context, group models.Group) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.groups {
		if existing.Slug == group.Slug {
			return models.Group{}, storage.ErrDuplicate
		}
	}
	group.ID = s.newID()
	s.groups[group.ID] = group
	return group, nil
}

func (s *Store) GetGroupBySlug(_ context.Context, slug string) (models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, group := range s.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return models.Group{}, storage.ErrNotFound
}

func (s *Store) ListGroups(_ context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}

// DeleteGroup keeps the group's posts and clears their group reference.
func (s *Store) DeleteGroup(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.groups, id)
	for postID, post := range s.posts {
		if post.GroupID != nil && *post.GroupID == id {
			post.GroupID = nil
			s.posts[postID] = post
		}
	}
	return nil
}

func (s *Store) CreatePost(_ context.Context, newPost storage.NewPost) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[newPost.AuthorID]; !ok {
		return models.Post{}, storage.ErrNotFound
	}
	if newPost.GroupID != nil {
		if _, ok := s.groups[*newPost.GroupID]; !ok {
			return models.Post{}, storage.ErrNotFound
		}
	}
	post := models.Post{
		ID:        s.newID(),
		Text:      newPost.Text,
		CreatedAt: s.Now(),
		Image:     newPost.Image,
		AuthorID:  newPost.AuthorID,
		GroupID:   copyID(newPost.GroupID),
	}
	s.posts[post.ID] = post
	return s.joinPostLocked(post), nil
}

func (s *Store) UpdatePost(_ context.Context, id int64, update storage.PostUpdate) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	if update.GroupID != nil {
		if _, ok := s.groups[*update.GroupID]; !ok {
			return models.Post{}, storage.ErrNotFound
		}
	}
	post.Text = update.Text
	post.GroupID = copyID(update.GroupID)
	if update.Image != nil {
		post.Image = *update.Image
	}
	s.posts[id] = post
	return s.joinPostLocked(post), nil
}

func (s *Store) GetPost(_ context.Context, id int64) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return models.Post{}, storage.ErrNotFound
	}
	return s.joinPostLocked(post), nil
}

func (s *Store) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	s.deletePostLocked(id)
	return nil
}

func (s *Store) CountPosts(_ context.Context, filter storage.PostFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filterPostsLocked(filter)), nil
}

func (s *Store) ListPosts(_ context.Context, filter storage.PostFilter, offset, limit int) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := s.filterPostsLocked(filter)
	if offset >= len(posts) {
		return []models.Post{}, nil
	}
	end := min(offset+limit, len(posts))
	result := make([]models.Post, 0, end-offset)
	for _, post := range posts[offset:end] {
		result = append(result, s.joinPostLocked(post))
	}
	return result, nil
}

func (s *Store) ListPostImages(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	images := make([]string, 0)
	for _, post := range s.posts {
		if post.Image != "" && !seen[post.Image] {
			seen[post.Image] = true
			images = append(images, post.Image)
		}
	}
	return images, nil
}

func (s *Store) CreateComment(_ context.Context, newComment storage.NewComment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, ok := s.users[newComment.AuthorID]
	if !ok {
		return models.Comment{}, storage.ErrNotFound
	}
	if newComment.PostID != nil {
		if _, ok := s.posts[*newComment.PostID]; !ok {
			return models.Comment{}, storage.ErrNotFound
		}
	}
	comment := models.Comment{
		ID:        s.newID(),
		Text:      newComment.Text,
		CreatedAt: s.Now(),
		AuthorID:  newComment.AuthorID,
		PostID:    copyID(newComment.PostID),
	}
	s.comments[comment.ID] = comment
	comment.Author = author
	comment.Author.PasswordHash = ""
	return comment, nil
}

func (s *Store) ListComments(_ context.Context, postID int64) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID != nil && *comment.PostID == postID {
			comment.Author = s.users[comment.AuthorID]
			comment.Author.PasswordHash = ""
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return newerFirst(comments[i].CreatedAt, comments[i].ID, comments[j].CreatedAt, comments[j].ID)
	})
	return comments, nil
}

func (s *Store) CreateFollow(_ context.Context, userID, authorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == authorID {
		return false, storage.ErrSelfFollow
	}
	if _, ok := s.users[userID]; !ok {
		return false, storage.ErrNotFound
	}
	if _, ok := s.users[authorID]; !ok {
		return false, storage.ErrNotFound
	}
	key := followKey{userID, authorID}
	if _, ok := s.follows[key]; ok {
		return false, nil
	}
	s.follows[key] = models.Follow{
		ID:        s.newID(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: s.Now(),
	}
	return true, nil
}

func (s *Store) DeleteFollow(_ context.Context, userID, authorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID, authorID}
	if _, ok := s.follows[key]; !ok {
		return false, nil
	}
	delete(s.follows, key)
	return true, nil
}

func (s *Store) IsFollowing(_ context.Context, userID, authorID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.follows[followKey{userID, authorID}]
	return ok, nil
}

func (s *Store) Stats(_ context.Context) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Stats{
		Users:    int64(len(s.users)),
		Groups:   int64(len(s.groups)),
		Posts:    int64(len(s.posts)),
		Comments: int64(len(s.comments)),
		Follows:  int64(len(s.follows)),
	}, nil
}

func (s *Store) Close() {}

// deletePostLocked removes a post and cascades to its comments.
func (s *Store) deletePostLocked(id int64) {
	delete(s.posts, id)
	for commentID, comment := range s.comments {
		if comment.PostID != nil && *comment.PostID == id {
			delete(s.comments, commentID)
		}
	}
}

func (s *Store) filterPostsLocked(filter storage.PostFilter) []models.Post {
	posts := make([]models.Post, 0)
	for _, post := range s.posts {
		if filter.GroupID != 0 && (post.GroupID == nil || *post.GroupID != filter.GroupID) {
			continue
		}
		if filter.AuthorID != 0 && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.FollowerID != 0 {
			if _, ok := s.follows[followKey{filter.FollowerID, post.AuthorID}]; !ok {
				continue
			}
		}
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return newerFirst(posts[i].CreatedAt, posts[i].ID, posts[j].CreatedAt, posts[j].ID)
	})
	return posts
}

func (s *Store) joinPostLocked(post models.Post) models.Post {
	post.Author = s.users[post.AuthorID]
	post.Author.PasswordHash = ""
	if post.GroupID != nil {
		if group, ok := s.groups[*post.GroupID]; ok {
			post.Group = &group
		}
	}
	return post
}

func newerFirst(aTime time.Time, aID int64, bTime time.Time, bID int64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID > bID
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}
