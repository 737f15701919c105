package echo

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Methods are the request methods the catch-all accepts.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
}

var allowHeader = strings.Join(Methods, ", ")

func allowed(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

type Handler struct {
	Log *slog.Logger
}

func NewHandler(log *slog.Logger) *Handler {
	return &Handler{Log: log}
}

// ServeHTTP answers every path as sent; r.URL.Path is never cleaned or
// redirected. Methods outside Methods get 405 with an Allow header.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowed(r.Method) {
		w.Header().Set("Allow", allowHeader)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		// Echo whatever arrived before the read failed.
		h.Log.Warn("read request body", slog.String("error", err.Error()))
	}

	res := NewResponse(r, body)

	h.Log.Info("request received", slog.String("path", res.Path))
	h.Log.Info("request method", slog.String("method", res.Method))
	h.Log.Info("request headers", slog.Any("headers", res.Headers))
	h.Log.Info("request body", slog.String("body", res.Body))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&res); err != nil {
		h.Log.Warn("write echo response", slog.String("error", err.Error()))
	}
}
