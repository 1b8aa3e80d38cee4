package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// Housekeeper purges invites that expired beyond the retention window
// without ever being consumed. Validation never depends on this running: an
// expired row left behind still evaluates as expired. Consumed invites are
// provenance records, kept for an external administrative deletion; the
// usage ledger is never touched at all.
type Housekeeper struct {
	Store     store.Store
	Interval  time.Duration
	Retention time.Duration
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (h *Housekeeper) Run(ctx context.Context) {
	log := slogx.FromContext(ctx)

	interval := h.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-h.Retention)
			n, err := h.Store.Invites().DeleteExpiredInvites(ctx, cutoff)
			if err != nil {
				log.Error("invite sweep failed", slog.Any("error", err))
				continue
			}
			if n > 0 {
				log.Debug("swept expired invites", slog.Int64("deleted", n))
			}
		}
	}
}
