package queries

import (
	"context"
	"yatube/storage/models"

	"github.com/jackc/pgx/v5"
)

const groupColumns = "id, title, slug, description"

func scanGroup(row interface{ Scan(...any) error }) (models.Group, error) {
	var group models.Group
	err := row.Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	return group, err
}

func CreateGroup(ctx context.Context, db DBTX, group models.Group) (models.Group, error) {
	return scanGroup(db.QueryRow(
		ctx,
		`INSERT INTO post_groups (title, slug, description) VALUES ($1, $2, $3) RETURNING `+groupColumns,
		group.Title, group.Slug, group.Description,
	))
}

func GetGroupBySlug(ctx context.Context, db DBTX, slug string) (models.Group, error) {
	return scanGroup(db.QueryRow(ctx, `SELECT `+groupColumns+` FROM post_groups WHERE slug = $1`, slug))
}

func ListGroups(ctx context.Context, db DBTX) ([]models.Group, error) {
	rows, err := db.Query(ctx, `SELECT `+groupColumns+` FROM post_groups ORDER BY title`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Group, error) {
		return scanGroup(row)
	})
}

// DeleteGroup detaches the group's posts through ON DELETE SET NULL.
func DeleteGroup(ctx context.Context, db DBTX, id int64) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM post_groups WHERE id = $1`, id)
	return tag.RowsAffected(), err
}

func CountGroups(ctx context.Context, db DBTX) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM post_groups`).Scan(&count)
	return count, err
}
