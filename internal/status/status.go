// Package status watches the trading gateway: it polls the gateway's own
// status endpoint, probes the API port directly, and keeps a sample history
// for availability figures.
package status

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dashsite/internal/config"
)

// Snapshot is one observation of the gateway. The wire names follow the
// report the gateway publishes; the usage metrics are optional and stay
// nil when the report omits them.
type Snapshot struct {
	GatewayRunning   bool      `json:"gateway_running"`
	PortListening    bool      `json:"port_4002_listening"`
	RAMUsagePercent  *float64  `json:"ram_usage_percent,omitempty"`
	DiskUsagePercent *float64  `json:"disk_usage_percent,omitempty"`
	UptimeDays       *float64  `json:"uptime_days,omitempty"`
	TakenAt          time.Time `json:"taken_at"`
}

// Monitor gathers snapshots from the endpoint and the port probe.
type Monitor struct {
	cfg    config.StatusConfig
	client *Client
	log    *zap.Logger
}

// NewMonitor creates a Monitor for the configured gateway.
func NewMonitor(cfg config.StatusConfig, log *zap.Logger) *Monitor {
	return &Monitor{
		cfg:    cfg,
		client: NewClient(cfg.Endpoint, cfg.Timeout()),
		log:    log,
	}
}

// Check gathers one snapshot. An unreachable or silent endpoint degrades to
// a not-running gateway instead of an error, and the port is always probed
// directly rather than trusted from the report.
func (m *Monitor) Check(ctx context.Context) Snapshot {
	snap := Snapshot{}
	if m.cfg.Endpoint != "" {
		fetched, err := m.client.Fetch(ctx)
		if err != nil {
			m.log.Debug("status endpoint unreachable", zap.String("endpoint", m.cfg.Endpoint), zap.Error(err))
		} else {
			snap = *fetched
		}
	}
	snap.PortListening = ProbePort(m.cfg.GatewayHost, m.cfg.GatewayPort, m.cfg.Timeout())
	snap.TakenAt = time.Now().UTC()
	return snap
}
