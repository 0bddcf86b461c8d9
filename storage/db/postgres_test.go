package db

import (
	"errors"
	"testing"
	"yatube/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var translateErrorTests = []struct {
	name string
	err  error
	want error
}{
	{"no rows", pgx.ErrNoRows, storage.ErrNotFound},
	{"unique", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"}, storage.ErrDuplicate},
	{"foreign key", &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "posts_group_id_fkey"}, storage.ErrNotFound},
	{"self follow", &pgconn.PgError{Code: checkViolation, ConstraintName: "follows_no_self_follow"}, storage.ErrSelfFollow},
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	for _, tt := range translateErrorTests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other))
}
