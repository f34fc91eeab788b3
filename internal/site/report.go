package site

import (
	"time"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/metrics"
)

// BuildOutcome is the final state of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Stage names used for timing and logging.
const (
	StageAssets   = "assets"
	StageNav      = "navigation"
	StageHomepage = "homepage"
	StagePages    = "pages"
	StageEntries  = "entries"
	StageLinks    = "links"
)

// Report summarises one build.
type Report struct {
	BuildID string
	Start   time.Time
	End     time.Time

	PagesWritten   int // homepage, single pages and collection items
	Collections    int
	ListPages      int
	Entries        int // legacy entries rendered
	AssetsCopied   int
	Skipped        int // declarations or files that produced no output
	Collisions     int
	BrokenLinks    int
	StageDurations map[string]time.Duration

	// Warnings are recoverable problems (missing inputs, broken links).
	Warnings []error
	// Errors are per-page failures; the build continued past them.
	Errors []error

	Outcome BuildOutcome
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// record files err as a warning or an error by severity.
func (r *Report) record(err error) {
	if errors.HasSeverity(err, errors.SeverityWarning) || errors.HasSeverity(err, errors.SeverityInfo) {
		r.Warnings = append(r.Warnings, err)
		if errors.HasCategory(err, errors.CategoryNotFound) {
			r.Skipped++
		}
		return
	}
	r.Errors = append(r.Errors, err)
}

func (r *Report) deriveOutcome() {
	switch {
	case r.Outcome != "":
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

func (r *Report) finish() {
	r.deriveOutcome()
	r.End = time.Now()
}

func resultFor(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.HasSeverity(err, errors.SeverityFatal):
		return metrics.ResultFatal
	default:
		return metrics.ResultWarning
	}
}
