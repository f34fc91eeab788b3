package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// PageKind labels written output files.
type PageKind string

const (
	PageKindHome       PageKind = "home"
	PageKindSingle     PageKind = "single"
	PageKindCollection PageKind = "collection_item"
	PageKindList       PageKind = "list"
	PageKindEntry      PageKind = "entry"
)

// Recorder defines observability hooks for the build.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncPageWritten(kind PageKind)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncPageWritten(PageKind)                    {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
