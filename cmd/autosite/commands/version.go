package commands

import (
	"fmt"

	"git.home.luguber.info/inful/autosite/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(g *Global) error {
	_, _ = fmt.Fprintf(g.stdout(), "autosite %s\n", version.String())
	return nil
}
