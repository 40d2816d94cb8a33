package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyMode       = "mode"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyRoot       = "root"
	KeyLink       = "link"
	KeyTarget     = "target"
	KeyDecision   = "decision"
	KeyCount      = "count"
	KeyPolicy     = "policy"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Decision(d string) slog.Attr     { return slog.String(KeyDecision, d) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
