package follows

import (
	"context"
	"errors"
	"yatube/storage"
	"yatube/storage/models"

	log "github.com/sirupsen/logrus"
)

var ErrAnonymous = errors.New("authentication required")

type Result int

const (
	ResultUnchanged Result = iota
	ResultCreated
	ResultDeleted
	ResultSelf
)

func (r Result) String() string {
	switch r {
	case ResultCreated:
		return "created"
	case ResultDeleted:
		return "deleted"
	case ResultSelf:
		return "self"
	default:
		return "unchanged"
	}
}

type Manager struct {
	store storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Follow creates the edge viewer -> target. Following yourself and following
// twice are both no-ops.
func (m *Manager) Follow(ctx context.Context, viewer *models.User, targetUsername string) (Result, error) {
	if viewer == nil {
		return ResultUnchanged, ErrAnonymous
	}
	author, err := m.store.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return ResultUnchanged, err
	}
	if author.ID == viewer.ID {
		return ResultSelf, nil
	}

	created, err := m.store.CreateFollow(ctx, viewer.ID, author.ID)
	if errors.Is(err, storage.ErrSelfFollow) {
		return ResultSelf, nil
	}
	if err != nil {
		return ResultUnchanged, err
	}
	if !created {
		return ResultUnchanged, nil
	}

	log.WithFields(log.Fields{"user": viewer.Username, "author": author.Username}).Info("Follow created")
	return ResultCreated, nil
}

// Unfollow removes the edge viewer -> target. A missing edge is not an error.
func (m *Manager) Unfollow(ctx context.Context, viewer *models.User, targetUsername string) (Result, error) {
	if viewer == nil {
		return ResultUnchanged, ErrAnonymous
	}
	author, err := m.store.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return ResultUnchanged, err
	}

	deleted, err := m.store.DeleteFollow(ctx, viewer.ID, author.ID)
	if err != nil {
		return ResultUnchanged, err
	}
	if !deleted {
		return ResultUnchanged, nil
	}

	log.WithFields(log.Fields{"user": viewer.Username, "author": author.Username}).Info("Follow deleted")
	return ResultDeleted, nil
}
