package commands

import (
	"fmt"

	"git.home.luguber.info/inful/autosite/internal/listindex"
)

// ListCmd groups the list file subcommands.
type ListCmd struct {
	Add ListAddCmd `cmd:"" help:"Prepend an entry to a list file"`
}

// ListAddCmd implements 'list add'.
type ListAddCmd struct {
	File     string `required:"" help:"List JSON file" type:"path"`
	URL      string `name:"url" required:"" help:"Entry URL"`
	Title    string `required:"" help:"Entry title"`
	Data     string `help:"Entry date or other data"`
	Abstract string `help:"Short description"`
}

func (l *ListAddCmd) Run(g *Global) error {
	list, err := listindex.Open(l.File)
	if err != nil {
		return err
	}
	entry, err := list.Add(l.URL, l.Title, l.Data, l.Abstract)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "Added entry %s to %s (%d entries)\n", entry.ID, l.File, list.Len())
	return nil
}
