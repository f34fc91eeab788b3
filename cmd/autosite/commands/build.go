package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output     string `short:"o" help:"Output directory for the generated site" default:"site" type:"path"`
	PaginateBy int    `name:"paginate-by" help:"Items per collection index page (overrides build.paginate_by)"`
	CheckLinks bool   `name:"check-links" help:"Verify internal links after the build"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, g.stdout(), root.Config, b)
}

// RunBuild loads the configuration, applies flag overrides and builds the site.
func RunBuild(ctx context.Context, out io.Writer, configPath string, opts *BuildCmd) error {
	// Provide friendly user-facing messages on stdout.
	_, _ = fmt.Fprintln(out, "Starting AutoSite build")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// #nosec G304 -- re-read for the manifest hash; Load already validated it.
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	if opts.PaginateBy < 0 {
		return errors.ValidationError("--paginate-by must be a positive integer").
			WithContext("paginate_by", opts.PaginateBy).Build()
	}
	if opts.PaginateBy > 0 {
		cfg.Build.PaginateBy = opts.PaginateBy
		slog.Debug("Pagination overridden via CLI flag", slog.Int("paginate_by", opts.PaginateBy))
	}
	if opts.CheckLinks {
		cfg.Build.CheckLinks = true
	}

	_, _ = fmt.Fprintf(out, "Generating website: %s\n", cfg.Title)
	_, _ = fmt.Fprintf(out, "Output directory: %s\n", opts.Output)

	gen, err := site.NewGenerator(cfg, opts.Output)
	if err != nil {
		return err
	}
	report, err := gen.SetRawConfig(raw).Generate(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Build failed")
		return err
	}

	printSummary(out, report)
	if n := len(report.Errors); n > 0 {
		return errors.NewError(errors.CategoryBuild, fmt.Sprintf("build finished with %d failed page(s)", n)).
			WithContext("path", opts.Output).Build()
	}
	return nil
}

func printSummary(out io.Writer, r *site.Report) {
	_, _ = fmt.Fprintf(out, "Pages: %d, collections: %d, list pages: %d, entries: %d\n",
		r.PagesWritten, r.Collections, r.ListPages, r.Entries)
	if len(r.Warnings) > 0 {
		_, _ = fmt.Fprintf(out, "Warnings: %d (skipped %d, broken links %d, slug collisions %d)\n",
			len(r.Warnings), r.Skipped, r.BrokenLinks, r.Collisions)
	}
	_, _ = fmt.Fprintf(out, "Generation complete! (%s)\n", r.Outcome)
}
