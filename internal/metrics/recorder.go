package metrics

import "time"

// ResultLabel enumerates document and run result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for a conversion run.
type Recorder interface {
	ObserveDocumentDuration(mode string, d time.Duration)
	IncDocumentResult(mode string, result ResultLabel)
	IncLinkDecision(decision string)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(string, time.Duration) {}
func (NoopRecorder) IncDocumentResult(string, ResultLabel)         {}
func (NoopRecorder) IncLinkDecision(string)                        {}
func (NoopRecorder) ObserveRunDuration(time.Duration)              {}
func (NoopRecorder) IncRunOutcome(ResultLabel)                     {}
