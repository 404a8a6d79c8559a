package status

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller samples the gateway on an interval and records the history.
type Poller struct {
	monitor  *Monitor
	store    *Store
	log      *zap.Logger
	interval time.Duration
	retain   time.Duration

	// OnSample, when set, receives every snapshot after it is stored.
	OnSample func(Snapshot)

	last *Snapshot
}

// DefaultRetention bounds the sample history kept on disk.
const DefaultRetention = 7 * 24 * time.Hour

// NewPoller creates a Poller. The store may be nil to poll without history.
func NewPoller(monitor *Monitor, store *Store, log *zap.Logger, interval time.Duration) *Poller {
	return &Poller{
		monitor:  monitor,
		store:    store,
		log:      log,
		interval: interval,
		retain:   DefaultRetention,
	}
}

// Run polls until the context is canceled. The first sample is taken
// immediately, not one interval in.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	snap := p.monitor.Check(ctx)

	if p.last != nil && (p.last.GatewayRunning != snap.GatewayRunning || p.last.PortListening != snap.PortListening) {
		p.log.Info("gateway state changed",
			zap.Bool("gateway_running", snap.GatewayRunning),
			zap.Bool("port_listening", snap.PortListening))
	}
	p.last = &snap

	if p.store != nil {
		if _, err := p.store.Insert(ctx, snap); err != nil {
			p.log.Warn("storing status sample", zap.Error(err))
		} else if p.retain > 0 {
			if n, err := p.store.DeleteBefore(ctx, snap.TakenAt.Add(-p.retain)); err != nil {
				p.log.Warn("pruning status samples", zap.Error(err))
			} else if n > 0 {
				p.log.Debug("pruned status samples", zap.Int64("removed", n))
			}
		}
	}

	if p.OnSample != nil {
		p.OnSample(snap)
	}
}
