// Package manifest records what a build produced: one record per written HTML
// file with the content fingerprint of its Markdown source.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/autosite/internal/content"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.json"

// BuildManifest represents a complete record of a build's inputs and outputs.
type BuildManifest struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ConfigHash string    `json:"config_hash"`
	// SourceRevision is the git HEAD of the content tree, when it is a repository.
	SourceRevision string   `json:"source_revision,omitempty"`
	Outputs        []Output `json:"outputs"`
	Status         string   `json:"status"`
	Duration       int64    `json:"duration_ms"`
	Warnings       int      `json:"warnings"`
}

// Output is one written file.
type Output struct {
	Path        string `json:"path"`
	Source      string `json:"source,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// New starts a manifest for build id. An empty id gets a fresh UUID.
func New(id string, now time.Time) *BuildManifest {
	if id == "" {
		id = uuid.NewString()
	}
	return &BuildManifest{
		ID:        id,
		Timestamp: now.UTC(),
	}
}

// SetConfig stores the SHA-256 of the raw configuration file.
func (m *BuildManifest) SetConfig(raw []byte) {
	sum := sha256.Sum256(raw)
	m.ConfigHash = fmt.Sprintf("%x", sum)
}

// Add records an output file. raw is the Markdown source, or nil for
// generated files such as collection indexes.
func (m *BuildManifest) Add(path, source string, raw []byte) {
	out := Output{Path: path, Source: source}
	if raw != nil {
		out.Fingerprint = Fingerprint(raw)
	}
	m.Outputs = append(m.Outputs, out)
}

// Fingerprint returns the mdfp content fingerprint of a Markdown source,
// computed over its frontmatter and body.
func Fingerprint(raw []byte) string {
	doc, err := content.Parse(raw)
	if err != nil {
		return mdfp.CalculateFingerprintFromParts("", string(raw))
	}
	return mdfp.CalculateFingerprintFromParts(string(doc.Frontmatter), string(doc.Body))
}

// ToJSON serializes the manifest with outputs sorted by path.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	sort.SliceStable(m.Outputs, func(i, j int) bool { return m.Outputs[i].Path < m.Outputs[j].Path })
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write stores the manifest at path.
func (m *BuildManifest) Write(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode manifest").Build()
	}
	// #nosec G306 -- the manifest is published with the site
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write manifest").
			WithContext("path", path).Build()
	}
	return nil
}
