package status

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dashsite/internal/render"
)

// RegisterRoutes mounts the status endpoints on the given router: the JSON
// API under /api/status and the rendered fragment the pages poll.
func RegisterRoutes(r chi.Router, monitor *Monitor, store *Store) {
	r.Route("/api/status", func(r chi.Router) {
		r.Get("/", handleCurrent(monitor))
		r.Get("/history", handleHistory(store))
		r.Get("/availability", handleAvailability(store))
	})
	r.Get("/fragment/status", handleFragment(monitor, store))
}

func handleCurrent(monitor *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, monitor.Check(r.Context()))
	}
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "history disabled", http.StatusServiceUnavailable)
			return
		}
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		samples, err := store.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if samples == nil {
			samples = []Sample{}
		}
		writeJSON(w, http.StatusOK, samples)
	}
}

func handleAvailability(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "history disabled", http.StatusServiceUnavailable)
			return
		}
		hours := 24
		if v := r.URL.Query().Get("hours"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				hours = n
			}
		}
		av, err := store.Availability(r.Context(), time.Now().Add(-time.Duration(hours)*time.Hour))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, av)
	}
}

// handleFragment renders the status containers the shared script swaps into
// the page: badges, metric tiles, and the meta line with availability and
// the sample time.
func handleFragment(monitor *Monitor, store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := monitor.Check(r.Context())

		var b strings.Builder
		b.WriteString(render.StatusBadges(snap.GatewayRunning, snap.PortListening))
		b.WriteString(render.MetricTiles(snap.RAMUsagePercent, snap.DiskUsagePercent, snap.UptimeDays))

		b.WriteString(`<div class="status-meta">`)
		if store != nil {
			if av, err := store.Availability(r.Context(), time.Now().Add(-24*time.Hour)); err == nil && av.Samples > 0 {
				fmt.Fprintf(&b, `<span class="status-availability">24h: Gateway %s, Port %s</span>`,
					render.Percent(av.GatewayUpPercent), render.Percent(av.PortUpPercent))
			}
		}
		fmt.Fprintf(&b, `<span class="status-stand">Stand: %s</span>`, render.DateTime(snap.TakenAt.Local()))
		b.WriteString(`</div>`)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(b.String()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
