package notifier

import (
	"context"
	"time"

	"contract-manager-backend/internal/domain/notification"

	"github.com/rs/zerolog"
)

// Dispatcher drains the notification outbox: rows are inserted inside the
// engine's business transactions and delivered here, after commit, on a
// polling loop. Delivery is at-least-once and strictly best-effort — a
// failed publish is logged and retried next tick, it can never unwind the
// committed transition that produced the row.
type Dispatcher struct {
	repo     notification.Repository
	pub      Publisher
	interval time.Duration
	batch    int
	log      zerolog.Logger
}

func NewDispatcher(repo notification.Repository, pub Publisher, interval time.Duration, batch int, log zerolog.Logger) *Dispatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batch <= 0 {
		batch = 100
	}
	return &Dispatcher{repo: repo, pub: pub, interval: interval, batch: batch, log: log}
}

// Run blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.Drain(ctx)
		}
	}
}

// Drain publishes one batch of unsent rows and stamps the ones delivered.
func (d *Dispatcher) Drain(ctx context.Context) {
	rows, err := d.repo.ListUnsent(ctx, d.batch)
	if err != nil {
		d.log.Error().Err(err).Msg("outbox read failed")
		return
	}
	if len(rows) == 0 {
		return
	}

	sent := make([]uint64, 0, len(rows))
	for _, n := range rows {
		if err := d.pub.Publish(ctx, n); err != nil {
			d.log.Warn().Err(err).Uint64("notification_id", n.ID).Msg("notification publish failed")
			continue
		}
		sent = append(sent, n.ID)
	}
	if len(sent) == 0 {
		return
	}
	if err := d.repo.MarkSent(ctx, sent, time.Now().UTC()); err != nil {
		// Rows stay unsent and will republish; consumers tolerate duplicates.
		d.log.Error().Err(err).Ints64("ids", toInt64s(sent)).Msg("outbox mark-sent failed")
	}
}

func toInt64s(in []uint64) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
