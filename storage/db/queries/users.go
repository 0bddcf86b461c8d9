package queries

import (
	"context"
	"yatube/storage/models"
)

const userColumns = "id, username, password_hash, created_at"

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	return user, err
}

func CreateUser(ctx context.Context, db DBTX, username, passwordHash string) (models.User, error) {
	return scanUser(db.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		username, passwordHash,
	))
}

func GetUserByID(ctx context.Context, db DBTX, id int64) (models.User, error) {
	return scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func GetUserByUsername(ctx context.Context, db DBTX, username string) (models.User, error) {
	return scanUser(db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func DeleteUser(ctx context.Context, db DBTX, id int64) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return tag.RowsAffected(), err
}

func CountUsers(ctx context.Context, db DBTX) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
