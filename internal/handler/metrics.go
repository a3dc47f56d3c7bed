package handler

import (
	"fmt"
	"net/http"

	"github.com/grocerly/grocerly/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "grocerly_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "grocerly_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "grocerly_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "grocerly_items_created_total %d\n", snap.ItemsCreated)
	writeMetric(w, "grocerly_items_updated_total %d\n", snap.ItemsUpdated)
	writeMetric(w, "grocerly_items_toggled_total %d\n", snap.ItemsToggled)
	writeMetric(w, "grocerly_items_deleted_total %d\n", snap.ItemsDeleted)
	writeMetric(w, "grocerly_items_cleared_total %d\n", snap.ItemsCleared)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
