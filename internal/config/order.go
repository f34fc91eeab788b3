package config

import "git.home.luguber.info/inful/autosite/internal/foundation"

// OrderMode selects how collection items are ordered.
type OrderMode string

const (
	// OrderByName sorts collection files lexicographically by file name.
	OrderByName OrderMode = "name"
	// OrderByWeight sorts by the frontmatter "weight" field, then by file name.
	OrderByWeight OrderMode = "weight"
)

var orderModes = foundation.NewNormalizer(map[string]OrderMode{
	string(OrderByName):   OrderByName,
	string(OrderByWeight): OrderByWeight,
}, "")

// NormalizeOrderMode case-folds raw and returns the matching mode, or "" when unknown.
func NormalizeOrderMode(raw string) OrderMode {
	return orderModes.Normalize(raw)
}

// OrderModeNames lists the accepted build.order values.
func OrderModeNames() []string {
	return orderModes.ValidKeys()
}
