package mw

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

func Recover(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Error("handler panic",
				slog.String("rid", RID(r.Context())),
				slog.String("panic", fmt.Sprint(rec)),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": "internal_error",
			})
		}()
		next.ServeHTTP(w, r)
	})
}
