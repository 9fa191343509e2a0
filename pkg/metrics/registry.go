// Package metrics exposes a small set of Prometheus collectors for the
// engine: command counts by INS, SW1 class counts, FSM state, resets, and
// active connections. Wiring is optional: a nil prometheus.Registerer passed
// to NewCardMetrics yields an unregistered-but-usable instance, and a nil
// *CardMetrics itself is safe to call every method on, so callers that
// don't enable metrics can pass it through unconditionally.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP handler serving reg in the Prometheus text
// exposition format, or nil if reg is nil (metrics disabled).
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return nil
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
