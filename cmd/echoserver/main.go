package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/3xpluto/echo-upstream/internal/config"
	"github.com/3xpluto/echo-upstream/internal/logging"
	"github.com/3xpluto/echo-upstream/internal/mw"
	"github.com/3xpluto/echo-upstream/internal/server"
)

func main() {
	var port int
	flag.IntVar(&port, "port", config.DefaultPort, "port to run the server on")
	flag.Parse()

	log := logging.New(os.Stdout)

	cfg, err := config.New(port)
	if err != nil {
		log.Error("invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	metrics := mw.NewMetrics(reg)

	srv := server.New(cfg, log, metrics)
	ln, err := server.Listen(srv)
	if err != nil {
		log.Error("failed to bind", slog.String("error", err.Error()))
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("echo server listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("latency_min", cfg.Latency.Min.String()),
			slog.String("latency_max", cfg.Latency.Max.String()),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-errCh:
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown incomplete", slog.String("error", err.Error()))
	}

	if summary, err := metrics.Summary(); err == nil {
		served := 0
		for _, n := range summary {
			served += n
		}
		log.Info("shutdown complete", slog.Int("requests", served), slog.Any("by_status", summary))
	} else {
		log.Info("shutdown complete")
	}
}
