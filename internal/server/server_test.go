package server

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/3xpluto/echo-upstream/internal/config"
	"github.com/3xpluto/echo-upstream/internal/mw"
)

func TestNewAppliesConfig(t *testing.T) {
	cfg, err := config.New(8089)
	if err != nil {
		t.Fatal(err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(cfg, log, mw.NewMetrics(prometheus.NewRegistry()))

	if srv.Addr != ":8089" {
		t.Fatalf("expected addr :8089, got %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout != 5*time.Second || srv.IdleTimeout != 60*time.Second {
		t.Fatalf("unexpected timeouts %s / %s", srv.ReadHeaderTimeout, srv.IdleTimeout)
	}
	if srv.MaxHeaderBytes != 1<<20 {
		t.Fatalf("unexpected max header bytes %d", srv.MaxHeaderBytes)
	}
}

func TestListenReportsBindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	srv := &http.Server{Addr: taken.Addr().String()}
	if _, err := Listen(srv); err == nil {
		t.Fatal("expected bind failure on a port already in use")
	} else if !strings.Contains(err.Error(), taken.Addr().String()) {
		t.Fatalf("error should name the address: %v", err)
	}
}

func TestHandlerChainSetsRequestIDAndEchoes(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Handler(log, mw.NewMetrics(prometheus.NewRegistry()), mw.FixedDelay(time.Millisecond))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(mw.RequestIDHeader) == "" {
		t.Fatal("expected a request id on the response")
	}
	if !strings.Contains(rec.Body.String(), `"path":"items/7"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
