package status

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dashsite/internal/db"
)

// Store keeps the snapshot history in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Sample is a stored snapshot.
type Sample struct {
	ID string `json:"id"`
	Snapshot
}

// Insert stores one snapshot and returns its id. A zero TakenAt is filled
// with the current time.
func (s *Store) Insert(ctx context.Context, snap Snapshot) (string, error) {
	id := uuid.New().String()
	takenAt := snap.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO status_samples (
			id, taken_at, gateway_running, port_listening,
			ram_usage_percent, disk_usage_percent, uptime_days
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		takenAt.UTC().Format(time.DateTime),
		snap.GatewayRunning,
		snap.PortListening,
		nullFloat(snap.RAMUsagePercent),
		nullFloat(snap.DiskUsagePercent),
		nullFloat(snap.UptimeDays),
	)
	if err != nil {
		return "", fmt.Errorf("inserting status sample: %w", err)
	}
	return id, nil
}

// Recent returns the newest samples, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Sample, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, taken_at, gateway_running, port_listening,
		       ram_usage_percent, disk_usage_percent, uptime_days
		FROM status_samples
		ORDER BY taken_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying status samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, *sample)
	}
	return samples, rows.Err()
}

// Availability summarizes the sample history since a point in time.
type Availability struct {
	Samples          int     `json:"samples"`
	GatewayUpPercent float64 `json:"gateway_up_percent"`
	PortUpPercent    float64 `json:"port_up_percent"`
}

// Availability computes up-time percentages over the samples taken since
// the given time. With no samples in the window all figures are zero.
func (s *Store) Availability(ctx context.Context, since time.Time) (Availability, error) {
	var (
		total             int
		gatewayUp, portUp sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(gateway_running), SUM(port_listening)
		FROM status_samples
		WHERE taken_at >= ?`,
		since.UTC().Format(time.DateTime),
	).Scan(&total, &gatewayUp, &portUp)
	if err != nil {
		return Availability{}, fmt.Errorf("computing availability: %w", err)
	}

	av := Availability{Samples: total}
	if total > 0 {
		av.GatewayUpPercent = 100 * float64(gatewayUp.Int64) / float64(total)
		av.PortUpPercent = 100 * float64(portUp.Int64) / float64(total)
	}
	return av, nil
}

// DeleteBefore removes all samples older than the given time. Returns the
// number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM status_samples WHERE taken_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old status samples: %w", err)
	}
	return res.RowsAffected()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSample(sc scanner) (*Sample, error) {
	var (
		sample        Sample
		ts            string
		ram, disk, up sql.NullFloat64
	)
	err := sc.Scan(
		&sample.ID, &ts, &sample.GatewayRunning, &sample.PortListening,
		&ram, &disk, &up,
	)
	if err != nil {
		return nil, err
	}

	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		sample.TakenAt = t.UTC()
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		sample.TakenAt = t.UTC()
	}

	if ram.Valid {
		sample.RAMUsagePercent = &ram.Float64
	}
	if disk.Valid {
		sample.DiskUsagePercent = &disk.Float64
	}
	if up.Valid {
		sample.UptimeDays = &up.Float64
	}
	return &sample, nil
}
