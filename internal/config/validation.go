package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// Validate rejects configurations the build cannot run with. Everything not
// checked here falls back to defaults instead.
func (c *Config) Validate() error {
	if c.Build.PaginateBy < 1 {
		return errors.ValidationError("build.paginate_by must be a positive integer").
			WithContext("paginate_by", c.Build.PaginateBy).Build()
	}
	if NormalizeOrderMode(string(c.Build.Order)) == "" {
		return errors.ValidationError(fmt.Sprintf("unknown build.order %q (expected one of: %s)", c.Build.Order, strings.Join(OrderModeNames(), ", "))).
			Build()
	}
	for i, p := range c.Pages {
		if p.Path == "" {
			return errors.ValidationError(fmt.Sprintf("pages[%d].path is required", i)).Build()
		}
	}
	for i, e := range c.Entries {
		if e.Source == "" || e.Template == "" || e.Output == "" || e.List == "" {
			return errors.ValidationError(fmt.Sprintf("entries[%d] needs source, template, output and list", i)).
				WithContext("source", e.Source).Build()
		}
	}
	return nil
}
