package mw

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"
)

// Delayer picks the artificial latency for one request.
type Delayer interface {
	Delay() time.Duration
}

// UniformDelay draws uniformly from [Min, Max], both ends inclusive.
type UniformDelay struct {
	Min time.Duration
	Max time.Duration
}

func (u UniformDelay) Delay() time.Duration {
	if u.Max <= u.Min {
		return u.Min
	}
	return u.Min + time.Duration(rand.Int64N(int64(u.Max-u.Min)+1))
}

// FixedDelay always returns itself.
type FixedDelay time.Duration

func (f FixedDelay) Delay() time.Duration { return time.Duration(f) }

// Latency holds each request for d.Delay() before calling next. Only the
// request's own goroutine waits. If the client goes away first, next is never
// called and nothing is written.
func Latency(d Delayer, log *slog.Logger, m *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delay := d.Delay()
		if m != nil {
			m.Delay.Observe(delay.Seconds())
		}

		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-r.Context().Done():
			log.Info("client gone during simulated latency",
				slog.String("rid", RID(r.Context())),
				slog.String("delay", delay.String()),
			)
			return
		}
		next.ServeHTTP(w, r)
	})
}
