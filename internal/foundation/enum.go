// Package foundation holds small generic helpers shared by the config and
// build packages.
package foundation

import (
	"sort"
	"strings"
)

// normalizeKey case-folds and trims a raw configuration value.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer maps free-form strings onto a fixed set of enum values.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
}

// NewNormalizer creates a normalizer from string->value pairs. Keys are
// matched case-insensitively.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[normalizeKey(k)] = v
	}
	return &Normalizer[T]{validValues: normalized, defaultValue: defaultValue}
}

// Normalize returns the value for raw, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.Lookup(raw); ok {
		return v
	}
	return n.defaultValue
}

// Lookup returns the value for raw and whether raw is a known key.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.validValues[normalizeKey(raw)]
	return v, ok
}

// ValidKeys lists the accepted keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	keys := make([]string, 0, len(n.validValues))
	for k := range n.validValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
