package history

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"goterm/pkg/logger"
)

// Retention prunes old history rows on a daily schedule. It only ever
// touches the history table; recycle bin entries are kept forever.
type Retention struct {
	store  *Store
	window time.Duration
	cron   *cron.Cron
}

// NewRetention creates a retention job over the store.
func NewRetention(store *Store, window time.Duration) *Retention {
	return &Retention{
		store:  store,
		window: window,
		cron:   cron.New(),
	}
}

// Start schedules the daily prune. An immediate prune also runs so a
// long-dormant database is trimmed at startup.
func (r *Retention) Start() error {
	if _, err := r.cron.AddFunc("@daily", r.prune); err != nil {
		return err
	}
	r.cron.Start()
	go r.prune()
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (r *Retention) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Retention) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := r.store.Prune(ctx, r.window)
	if err != nil {
		logger.Error().Err(err).Msg("history prune failed")
		return
	}
	if n > 0 {
		logger.Info().Int64("removed", n).Msg("pruned old history entries")
	}
}
