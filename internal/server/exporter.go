// Package server hosts the Prometheus export listener. The listener is the
// process-wide export target: installed at most once, serving whichever
// registry was active at install time.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter serves Prometheus metrics over HTTP.
type Exporter struct {
	addr     string
	path     string
	server   *http.Server
	listener net.Listener
	stopOnce sync.Once
	stopErr  error
}

// NewExporter creates an exporter serving the gatherer at path on addr.
func NewExporter(addr, path string, gatherer prom.Gatherer) *Exporter {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	return &Exporter{
		addr: addr,
		path: path,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start binds the listen address and begins serving in the background. Binding
// happens synchronously so an occupied or unroutable address fails here rather
// than later in the serve goroutine.
func (e *Exporter) Start() error {
	listener, err := net.Listen("tcp", e.addr)
	if err != nil {
		return err
	}
	e.listener = listener

	go func() {
		slog.Info("Starting metrics exporter", "addr", listener.Addr().String(), "path", e.path)
		if err := e.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics exporter stopped unexpectedly", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address, or the configured address before Start.
func (e *Exporter) Addr() string {
	if e.listener != nil {
		return e.listener.Addr().String()
	}
	return e.addr
}

// Stop gracefully shuts the exporter down. Idempotent and safe to call from
// any goroutine.
func (e *Exporter) Stop() error {
	e.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutting down metrics exporter", "addr", e.Addr())
		e.stopErr = e.server.Shutdown(ctx)
	})
	return e.stopErr
}
