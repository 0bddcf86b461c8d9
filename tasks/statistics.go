package tasks

import (
	"context"
	"time"
	"yatube/monitoring"
	"yatube/storage"

	log "github.com/sirupsen/logrus"
)

// StatisticsUpdater periodically publishes entity totals as gauges.
type StatisticsUpdater struct {
	store    storage.Store
	interval time.Duration
}

func NewStatisticsUpdater(store storage.Store, interval time.Duration) *StatisticsUpdater {
	return &StatisticsUpdater{
		store:    store,
		interval: interval,
	}
}

func (u *StatisticsUpdater) Run(ctx context.Context) {
	u.Update(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(u.interval):
			u.Update(ctx)
		}
	}
}

func (u *StatisticsUpdater) Update(ctx context.Context) {
	stats, err := u.store.Stats(ctx)
	if err != nil {
		log.Errorf("Error getting statistics: %v", err)
		return
	}

	monitoring.StoredEntities.WithLabelValues("users").Set(float64(stats.Users))
	monitoring.StoredEntities.WithLabelValues("groups").Set(float64(stats.Groups))
	monitoring.StoredEntities.WithLabelValues("posts").Set(float64(stats.Posts))
	monitoring.StoredEntities.WithLabelValues("comments").Set(float64(stats.Comments))
	monitoring.StoredEntities.WithLabelValues("follows").Set(float64(stats.Follows))
}
