package db

import (
	"context"
	"errors"
	"fmt"
	"yatube/storage"
	"yatube/storage/db/queries"
	"yatube/storage/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

type Config struct {
	URL      string
	Host     string
	Port     int
	Database string
	User     string
	Password string
	MaxConns int32
}

func (c Config) connectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s sslmode=disable host=%s port=%d",
		c.User,
		c.Password,
		c.Database,
		c.Host,
		c.Port,
	)
}

var _ storage.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func Connect(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.connectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// translateError maps driver errors onto the storage sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", storage.ErrDuplicate, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", storage.ErrNotFound, pgErr.ConstraintName)
		case checkViolation:
			if pgErr.ConstraintName == "follows_no_self_follow" {
				return storage.ErrSelfFollow
			}
		}
	}
	return err
}

func requireAffected(affected int64, err error) error {
	if err != nil {
		return translateError(err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	user, err := queries.CreateUser(ctx, s.pool, username, passwordHash)
	return user, translateError(err)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	user, err := queries.GetUserByID(ctx, s.pool, id)
	return user, translateError(err)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := queries.GetUserByUsername(ctx, s.pool, username)
	return user, translateError(err)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	return requireAffected(queries.DeleteUser(ctx, s.pool, id))
}

func (s *PostgresStore) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	created, err := queries.CreateGroup(ctx, s.pool, group)
	return created, translateError(err)
}

func (s *PostgresStore) GetGroupBySlug(ctx context.Context, slug string) (models.Group, error) {
	group, err := queries.GetGroupBySlug(ctx, s.pool, slug)
	return group, translateError(err)
}

func (s *PostgresStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := queries.ListGroups(ctx, s.pool)
	return groups, translateError(err)
}

func (s *PostgresStore) DeleteGroup(ctx context.Context, id int64) error {
	return requireAffected(queries.DeleteGroup(ctx, s.pool, id))
}

func (s *PostgresStore) CreatePost(ctx context.Context, post storage.NewPost) (models.Post, error) {
	id, err := queries.CreatePost(ctx, s.pool, post.Text, post.Image, post.AuthorID, post.GroupID)
	if err != nil {
		return models.Post{}, translateError(err)
	}
	return s.GetPost(ctx, id)
}

func (s *PostgresStore) UpdatePost(ctx context.Context, id int64, update storage.PostUpdate) (models.Post, error) {
	err := requireAffected(queries.UpdatePost(ctx, s.pool, id, update.Text, update.Image, update.GroupID))
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPost(ctx, id)
}

func (s *PostgresStore) GetPost(ctx context.Context, id int64) (models.Post, error) {
	post, err := queries.GetPost(ctx, s.pool, id)
	return post, translateError(err)
}

func (s *PostgresStore) DeletePost(ctx context.Context, id int64) error {
	return requireAffected(queries.DeletePost(ctx, s.pool, id))
}

func (s *PostgresStore) CountPosts(ctx context.Context, filter storage.PostFilter) (int, error) {
	count, err := queries.CountPosts(ctx, s.pool, filter.GroupID, filter.AuthorID, filter.FollowerID)
	return count, translateError(err)
}

func (s *PostgresStore) ListPosts(
	ctx context.Context,
	filter storage.PostFilter,
	offset, limit int,
) ([]models.Post, error) {
	posts, err := queries.ListPosts(
		ctx, s.pool, filter.GroupID, filter.AuthorID, filter.FollowerID, offset, limit,
	)
	return posts, translateError(err)
}

func (s *PostgresStore) ListPostImages(ctx context.Context) ([]string, error) {
	images, err := queries.ListPostImages(ctx, s.pool)
	return images, translateError(err)
}

func (s *PostgresStore) CreateComment(ctx context.Context, comment storage.NewComment) (models.Comment, error) {
	created, err := queries.CreateComment(ctx, s.pool, comment.Text, comment.AuthorID, comment.PostID)
	return created, translateError(err)
}

func (s *PostgresStore) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments, err := queries.ListComments(ctx, s.pool, postID)
	return comments, translateError(err)
}

func (s *PostgresStore) CreateFollow(ctx context.Context, userID, authorID int64) (bool, error) {
	created, err := queries.CreateFollow(ctx, s.pool, userID, authorID)
	return created > 0, translateError(err)
}

func (s *PostgresStore) DeleteFollow(ctx context.Context, userID, authorID int64) (bool, error) {
	deleted, err := queries.DeleteFollow(ctx, s.pool, userID, authorID)
	return deleted > 0, translateError(err)
}

func (s *PostgresStore) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	following, err := queries.IsFollowing(ctx, s.pool, userID, authorID)
	return following, translateError(err)
}

func (s *PostgresStore) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	var err error

	if stats.Users, err = queries.CountUsers(ctx, s.pool); err != nil {
		return stats, translateError(err)
	}
	if stats.Groups, err = queries.CountGroups(ctx, s.pool); err != nil {
		return stats, translateError(err)
	}
	if stats.Posts, err = queries.CountAllPosts(ctx, s.pool); err != nil {
		return stats, translateError(err)
	}
	if stats.Comments, err = queries.CountComments(ctx, s.pool); err != nil {
		return stats, translateError(err)
	}
	if stats.Follows, err = queries.CountFollows(ctx, s.pool); err != nil {
		return stats, translateError(err)
	}
	return stats, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
