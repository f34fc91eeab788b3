package site

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/logfields"
)

// outputWriter writes rendered files under the output directory and tracks
// which source produced each path so slug collisions can be reported.
type outputWriter struct {
	root    string
	written map[string]string
	// onCollision is called when a path is written a second time.
	onCollision func(rel, previous, source string)
}

func newOutputWriter(root string) *outputWriter {
	return &outputWriter{root: root, written: make(map[string]string)}
}

// Write stores data at the site-relative slash path rel, creating parent
// directories and replacing any existing file.
func (w *outputWriter) Write(rel, source string, data []byte) (string, error) {
	if rel == "" {
		return "", errors.ValidationError("output path is required").Build()
	}

	cleanRel := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", errors.ValidationError("output path escapes the output directory").
			WithContext("path", rel).Build()
	}
	fullPath := filepath.Join(w.root, cleanRel)

	if previous, ok := w.written[rel]; ok {
		slog.Warn("Output path written twice; last writer wins",
			logfields.Output(rel),
			slog.String("previous", previous),
			logfields.Path(source))
		if w.onCollision != nil {
			w.onCollision(rel, previous, source)
		}
	}

	// #nosec G301 -- the output tree is served publicly
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", filepath.Dir(fullPath)).Build()
	}
	// #nosec G306 -- generated pages are public
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
			WithContext("path", fullPath).Build()
	}

	w.written[rel] = source
	return fullPath, nil
}
