package queries

import (
	"context"
	"yatube/storage/models"

	"github.com/jackc/pgx/v5"
)

const selectPosts = `
SELECT p.id, p.text, p.created_at, p.image, p.author_id, p.group_id,
       u.id, u.username, u.created_at,
       g.title, g.slug, g.description
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN post_groups g ON g.id = p.group_id`

// Zero filter values disable the corresponding condition.
const postsFilter = `
WHERE ($1::bigint = 0 OR p.group_id = $1)
  AND ($2::bigint = 0 OR p.author_id = $2)
  AND ($3::bigint = 0 OR p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $3))`

const postsOrder = `
ORDER BY p.created_at DESC, p.id DESC`

func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var post models.Post
	var groupTitle, groupSlug, groupDescription *string

	err := row.Scan(
		&post.ID, &post.Text, &post.CreatedAt, &post.Image, &post.AuthorID, &post.GroupID,
		&post.Author.ID, &post.Author.Username, &post.Author.CreatedAt,
		&groupTitle, &groupSlug, &groupDescription,
	)
	if err != nil {
		return post, err
	}
	if post.GroupID != nil && groupSlug != nil {
		post.Group = &models.Group{
			ID:          *post.GroupID,
			Title:       *groupTitle,
			Slug:        *groupSlug,
			Description: *groupDescription,
		}
	}
	return post, nil
}

func CreatePost(ctx context.Context, db DBTX, text, image string, authorID int64, groupID *int64) (int64, error) {
	var id int64
	err := db.QueryRow(
		ctx,
		`INSERT INTO posts (text, image, author_id, group_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		text, image, authorID, groupID,
	).Scan(&id)
	return id, err
}

// UpdatePost keeps the stored image when image is nil.
func UpdatePost(ctx context.Context, db DBTX, id int64, text string, image *string, groupID *int64) (int64, error) {
	tag, err := db.Exec(
		ctx,
		`UPDATE posts SET text = $2, image = COALESCE($3, image), group_id = $4 WHERE id = $1`,
		id, text, image, groupID,
	)
	return tag.RowsAffected(), err
}

func GetPost(ctx context.Context, db DBTX, id int64) (models.Post, error) {
	return scanPost(db.QueryRow(ctx, selectPosts+` WHERE p.id = $1`, id))
}

func DeletePost(ctx context.Context, db DBTX, id int64) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return tag.RowsAffected(), err
}

func CountPosts(ctx context.Context, db DBTX, groupID, authorID, followerID int64) (int, error) {
	var count int
	err := db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM posts p`+postsFilter,
		groupID, authorID, followerID,
	).Scan(&count)
	return count, err
}

func ListPosts(
	ctx context.Context,
	db DBTX,
	groupID, authorID, followerID int64,
	offset, limit int,
) ([]models.Post, error) {
	rows, err := db.Query(
		ctx,
		selectPosts+postsFilter+postsOrder+` OFFSET $4 LIMIT $5`,
		groupID, authorID, followerID, offset, limit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Post, error) {
		return scanPost(row)
	})
}

func ListPostImages(ctx context.Context, db DBTX) ([]string, error) {
	rows, err := db.Query(ctx, `SELECT DISTINCT image FROM posts WHERE image <> ''`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func CountAllPosts(ctx context.Context, db DBTX) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}
