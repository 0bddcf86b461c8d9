package queries

import (
	"context"
	"yatube/storage/models"

	"github.com/jackc/pgx/v5"
)

func CreateComment(ctx context.Context, db DBTX, text string, authorID int64, postID *int64) (models.Comment, error) {
	comment := models.Comment{Text: text, AuthorID: authorID, PostID: postID}
	err := db.QueryRow(
		ctx,
		`INSERT INTO comments (text, author_id, post_id) VALUES ($1, $2, $3) RETURNING id, created_at`,
		text, authorID, postID,
	).Scan(&comment.ID, &comment.CreatedAt)
	return comment, err
}

func ListComments(ctx context.Context, db DBTX, postID int64) ([]models.Comment, error) {
	rows, err := db.Query(
		ctx,
		`SELECT c.id, c.text, c.created_at, c.author_id, c.post_id, u.id, u.username, u.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at DESC, c.id DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Comment, error) {
		var comment models.Comment
		err := row.Scan(
			&comment.ID, &comment.Text, &comment.CreatedAt, &comment.AuthorID, &comment.PostID,
			&comment.Author.ID, &comment.Author.Username, &comment.Author.CreatedAt,
		)
		return comment, err
	})
}

func CountComments(ctx context.Context, db DBTX) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&count)
	return count, err
}
