package tasks

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"yatube/monitoring"
	"yatube/storage"

	log "github.com/sirupsen/logrus"
)

// MediaCleaner removes uploaded images no post references any more. Files
// younger than minAge are kept so an upload racing its post insert survives.
type MediaCleaner struct {
	store    storage.Store
	root     string
	interval time.Duration
	minAge   time.Duration

	now func() time.Time
}

func NewMediaCleaner(store storage.Store, root string, interval time.Duration) *MediaCleaner {
	return &MediaCleaner{
		store:    store,
		root:     root,
		interval: interval,
		minAge:   interval,
		now:      time.Now,
	}
}

func (c *MediaCleaner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.interval):
			removed, err := c.Clean(ctx)
			if err != nil {
				log.Errorf("Error cleaning media: %v", err)
				continue
			}
			if removed > 0 {
				log.Infof("Removed %d orphaned media files", removed)
			}
		}
	}
}

// Clean deletes orphaned files under root and returns how many were removed.
func (c *MediaCleaner) Clean(ctx context.Context) (int, error) {
	images, err := c.store.ListPostImages(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool, len(images))
	for _, image := range images {
		referenced[filepath.ToSlash(filepath.Clean(image))] = true
	}

	cutoff := c.now().Add(-c.minAge)
	removed := 0
	err = filepath.WalkDir(c.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		if referenced[filepath.ToSlash(rel)] {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			return err
		}
		removed++
		monitoring.MediaFilesRemoved.Inc()
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return removed, nil
	}
	return removed, err
}
