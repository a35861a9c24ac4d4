package internal

import (
	"io"
	"log/slog"
)

// Component names used in the "component" log attribute
const (
	ComponentApp     = "app"
	ComponentDataset = "dataset"
	ComponentConfig  = "config"
	ComponentCheck   = "check"
	ComponentRender  = "render"
)

// NewLogger returns a text logger on w, at debug level when verbose
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithComponent tags every record of the returned logger with component
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With("component", component)
}

// LogDiscrepancies logs each discrepancy as a warning
func LogDiscrepancies(l *slog.Logger, ds []Discrepancy) {
	for _, d := range ds {
		l.Warn("totals mismatch",
			"quarter", d.Quarter,
			"total", d.Total,
			"reported", d.Reported,
			"computed", d.Computed,
		)
	}
}
