package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyPage        = "page"
	KeyPath        = "path"
	KeyURL         = "url"
	KeySlug        = "slug"
	KeyCollection  = "collection"
	KeyPageNumber  = "page_number"
	KeyItems       = "items"
	KeyOutput      = "output"
	KeyEntrySource = "entry_source"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Page(title string) slog.Attr      { return slog.String(KeyPage, title) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Collection(name string) slog.Attr { return slog.String(KeyCollection, name) }
func PageNumber(n int) slog.Attr       { return slog.Int(KeyPageNumber, n) }
func Items(n int) slog.Attr            { return slog.Int(KeyItems, n) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func EntrySource(p string) slog.Attr   { return slog.String(KeyEntrySource, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
