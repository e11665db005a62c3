// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter serves a registry on /metrics.
type Exporter struct {
	server *http.Server
}

// NewExporter returns an exporter for g listening on addr.
func NewExporter(addr string, g prometheus.Gatherer) *Exporter {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return &Exporter{server: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Handler returns the HTTP handler, for embedding or tests.
func (e *Exporter) Handler() http.Handler { return e.server.Handler }

// Start serves until Stop; a normal shutdown returns nil.
func (e *Exporter) Start() error {
	if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight scrapes until ctx is done.
func (e *Exporter) Stop(ctx context.Context) error {
	return e.server.Shutdown(ctx)
}
