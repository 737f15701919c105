package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a plain-text, info-level logger writing to w (stdout when nil).
func New(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
