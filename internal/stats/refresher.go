package stats

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Refresher recomputes the dashboard aggregate on a schedule and stores it in
// the cache so the dashboard stays warm between admin visits.
type Refresher struct {
	source Source
	cache  Cache
	cron   *cron.Cron
}

func NewRefresher(source Source, cache Cache) *Refresher {
	return &Refresher{source: source, cache: cache, cron: cron.New()}
}

func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc("@every 5m", r.refresh); err != nil {
		return err
	}
	r.cron.Start()
	log.Info().Msg("dashboard stats refresher started")
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	d, err := r.source.Dashboard(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("scheduled dashboard refresh failed")
		return
	}
	r.cache.Set(ctx, d)
}
