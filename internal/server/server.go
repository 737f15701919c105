package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/3xpluto/echo-upstream/internal/config"
	"github.com/3xpluto/echo-upstream/internal/echo"
	"github.com/3xpluto/echo-upstream/internal/mw"
)

// Handler builds the catch-all echo handler and its middleware chain.
func Handler(log *slog.Logger, metrics *mw.Metrics, delay mw.Delayer) http.Handler {
	// outermost -> innermost: rid, metrics, access log, recover, latency, echo
	var h http.Handler = echo.NewHandler(log)
	h = mw.Latency(delay, log, metrics, h)
	h = mw.Recover(log, h)
	h = mw.AccessLog(log, h)
	h = mw.Instrument(metrics, h)
	h = mw.RequestID(h)
	return h
}

func New(cfg *config.Config, log *slog.Logger, metrics *mw.Metrics) *http.Server {
	delay := mw.UniformDelay{Min: cfg.Latency.Min, Max: cfg.Latency.Max}
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           Handler(log, metrics, delay),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSeconds) * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
}

// Listen binds the server socket so bind failures surface before serving.
func Listen(srv *http.Server) (net.Listener, error) {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	return ln, nil
}
