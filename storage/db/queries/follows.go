package queries

import "context"

// CreateFollow leans on the follows_unique_pair constraint, so concurrent
// duplicates collapse into one edge.
func CreateFollow(ctx context.Context, db DBTX, userID, authorID int64) (int64, error) {
	tag, err := db.Exec(
		ctx,
		`INSERT INTO follows (user_id, author_id) VALUES ($1, $2)
		 ON CONFLICT ON CONSTRAINT follows_unique_pair DO NOTHING`,
		userID, authorID,
	)
	return tag.RowsAffected(), err
}

func DeleteFollow(ctx context.Context, db DBTX, userID, authorID int64) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	return tag.RowsAffected(), err
}

func IsFollowing(ctx context.Context, db DBTX, userID, authorID int64) (bool, error) {
	var exists bool
	err := db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID,
	).Scan(&exists)
	return exists, err
}

func CountFollows(ctx context.Context, db DBTX) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM follows`).Scan(&count)
	return count, err
}
