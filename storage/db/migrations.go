package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type migration struct {
	apply  []string
	revert []string
}

var migrations = []migration{
	// 001
	{
		apply: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id            BIGSERIAL PRIMARY KEY,
				username      VARCHAR(150) NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS post_groups (
				id          BIGSERIAL PRIMARY KEY,
				title       VARCHAR(200) NOT NULL,
				slug        VARCHAR(50) NOT NULL UNIQUE,
				description TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS posts (
				id         BIGSERIAL PRIMARY KEY,
				text       TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				image      TEXT NOT NULL DEFAULT '',
				author_id  BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				group_id   BIGINT REFERENCES post_groups (id) ON DELETE SET NULL
			)`,
			`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC, id DESC)`,
			`CREATE INDEX IF NOT EXISTS posts_author_id_idx ON posts (author_id)`,
			`CREATE INDEX IF NOT EXISTS posts_group_id_idx ON posts (group_id)`,
			`CREATE TABLE IF NOT EXISTS comments (
				id         BIGSERIAL PRIMARY KEY,
				text       TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				author_id  BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				post_id    BIGINT REFERENCES posts (id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments (post_id, created_at DESC)`,
		},
		revert: []string{
			`DROP TABLE IF EXISTS comments`,
			`DROP TABLE IF EXISTS posts`,
			`DROP TABLE IF EXISTS post_groups`,
			`DROP TABLE IF EXISTS users`,
		},
	},
	// 002
	{
		apply: []string{
			`CREATE TABLE IF NOT EXISTS follows (
				id         BIGSERIAL PRIMARY KEY,
				user_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				author_id  BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT follows_unique_pair UNIQUE (user_id, author_id),
				CONSTRAINT follows_no_self_follow CHECK (user_id <> author_id)
			)`,
			`CREATE INDEX IF NOT EXISTS follows_author_id_idx ON follows (author_id)`,
		},
		revert: []string{
			`DROP TABLE IF EXISTS follows`,
		},
	},
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER NOT NULL)`

// Operation types
type operation int

const (
	apply operation = iota
	revert
)

type MigrationConfig struct {
	ToIndex *int
}

func currentVersion(ctx context.Context, tx pgx.Tx) (int, error) {
	if _, err := tx.Exec(ctx, createVersionTable); err != nil {
		return 0, err
	}
	var version int
	err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}

func setVersion(ctx context.Context, tx pgx.Tx, version int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version)
	return err
}

func executeOperation(ctx context.Context, pool *pgxpool.Pool, config *MigrationConfig, op operation) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	version, err := currentVersion(ctx, tx)
	if err != nil {
		return err
	}

	switch op {
	case apply:
		toIndex := len(migrations)
		if config.ToIndex != nil {
			toIndex = min(*config.ToIndex, len(migrations))
		}
		for i := version; i < toIndex; i++ {
			for _, statement := range migrations[i].apply {
				if _, err = tx.Exec(ctx, statement); err != nil {
					return fmt.Errorf("apply migration %03d: %w", i+1, err)
				}
			}
			log.Infof("Applied migration %03d", i+1)
		}
		if toIndex > version {
			return setVersion(ctx, tx, toIndex)
		}
	case revert:
		toIndex := 0
		if config.ToIndex != nil {
			toIndex = max(*config.ToIndex, 0)
		}
		for i := version - 1; i >= toIndex; i-- {
			for _, statement := range migrations[i].revert {
				if _, err = tx.Exec(ctx, statement); err != nil {
					return fmt.Errorf("revert migration %03d: %w", i+1, err)
				}
			}
			log.Infof("Reverted migration %03d", i+1)
		}
		if toIndex < version {
			return setVersion(ctx, tx, toIndex)
		}
	}

	return nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool, config *MigrationConfig) error {
	return executeOperation(ctx, pool, config, apply)
}

func Revert(ctx context.Context, pool *pgxpool.Pool, config *MigrationConfig) error {
	return executeOperation(ctx, pool, config, revert)
}
