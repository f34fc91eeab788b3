package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/autosite/internal/assets"
	"git.home.luguber.info/inful/autosite/internal/config"
	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
	"git.home.luguber.info/inful/autosite/internal/legacy"
	"git.home.luguber.info/inful/autosite/internal/linkcheck"
	"git.home.luguber.info/inful/autosite/internal/logfields"
	"git.home.luguber.info/inful/autosite/internal/manifest"
	"git.home.luguber.info/inful/autosite/internal/markdown"
	"git.home.luguber.info/inful/autosite/internal/metrics"
	"git.home.luguber.info/inful/autosite/internal/nav"
	"git.home.luguber.info/inful/autosite/internal/templates"
)

// textfileWriter is implemented by recorders that can export to a file.
type textfileWriter interface {
	WriteTextfile(path string) error
}

// Generator builds the site described by a Config into an output directory.
type Generator struct {
	config    *config.Config
	outputDir string
	rawConfig []byte
	recorder  metrics.Recorder
	stat      nav.StatFunc

	renderer  *templates.Renderer
	converter *markdown.Converter
	legacy    *legacy.Processor

	// per-build state, reset by Generate
	nav      []nav.Entry
	out      *outputWriter
	report   *Report
	manifest *manifest.BuildManifest
}

// NewGenerator creates a Generator. When the configuration names a metrics
// file a Prometheus recorder is installed; SetRecorder overrides it.
func NewGenerator(cfg *config.Config, outputDir string) (*Generator, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		config:    cfg,
		outputDir: filepath.Clean(outputDir),
		recorder:  metrics.NoopRecorder{},
		stat:      os.Stat,
		renderer:  renderer,
		converter: markdown.New(),
		legacy:    legacy.NewProcessor(),
	}
	if cfg.Build.MetricsFile != "" {
		g.recorder = metrics.NewPrometheusRecorder(nil)
	}
	g.reset("")
	return g, nil
}

// SetRecorder injects a metrics recorder. Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	return g
}

// SetRawConfig stores the configuration file contents hashed into the manifest.
func (g *Generator) SetRawConfig(raw []byte) *Generator {
	g.rawConfig = raw
	return g
}

// OutputDir returns the directory the site is written to.
func (g *Generator) OutputDir() string { return g.outputDir }

func (g *Generator) reset(buildID string) {
	g.report = newReport(buildID)
	g.out = newOutputWriter(g.outputDir)
	g.out.onCollision = func(string, string, string) { g.report.Collisions++ }
	g.manifest = nil
	g.nav = nil
}

// Generate runs a full build. Already written files are kept when it fails.
// Cancellation is observed between page declarations.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	buildID := uuid.NewString()
	g.reset(buildID)
	if g.config.Build.Manifest {
		g.manifest = manifest.New(buildID, g.report.Start)
		g.manifest.SetConfig(g.rawConfig)
		g.manifest.SourceRevision = manifest.DetectRevision(filepath.Dir(g.config.Homepage))
	}

	slog.Info("Starting site generation",
		logfields.BuildID(buildID),
		logfields.Output(g.outputDir),
		slog.String("site", g.config.Title),
		slog.Int("pages", len(g.config.Pages)))

	if err := g.runStage(StageAssets, g.prepareOutput); err != nil {
		return g.fail(err)
	}
	_ = g.runStage(StageNav, func() error {
		g.nav = nav.Build(g.config.Pages, g.stat)
		slog.Debug("Built navigation", slog.Int("entries", len(g.nav)))
		return nil
	})
	if err := g.runStage(StageHomepage, func() error { return g.RenderHomepage(g.config.Homepage) }); err != nil {
		return g.fail(errors.WrapError(err, errors.GetCategory(err), "homepage generation failed").Fatal().Build())
	}
	if err := g.runStage(StagePages, func() error { return g.renderPages(ctx) }); err != nil {
		return g.fail(err)
	}
	if len(g.config.Entries) > 0 {
		_ = g.runStage(StageEntries, g.renderEntries)
	}
	if g.config.Build.CheckLinks {
		_ = g.runStage(StageLinks, g.checkLinks)
	}

	g.finish()
	slog.Info("Site generation completed",
		logfields.BuildID(buildID),
		logfields.Output(g.outputDir),
		slog.Int("pages_written", g.report.PagesWritten),
		slog.Int("list_pages", g.report.ListPages),
		slog.Int("warnings", len(g.report.Warnings)),
		slog.Int("errors", len(g.report.Errors)),
		logfields.DurationMS(float64(g.report.Duration().Milliseconds())),
		slog.String("outcome", string(g.report.Outcome)))
	return g.report, nil
}

func (g *Generator) renderPages(ctx context.Context) error {
	for _, p := range g.config.Pages {
		if err := ctx.Err(); err != nil {
			g.report.Outcome = OutcomeCanceled
			return errors.WrapError(err, errors.CategoryBuild, "build canceled").
				WithContext("next_page", p.Path).Build()
		}
		g.handle(g.RenderPage(p), logfields.Page(nav.PageTitle(p)))
	}
	return nil
}

func (g *Generator) renderEntries() error {
	for _, entry := range g.config.Entries {
		res, err := g.legacy.Process(entry)
		if err != nil {
			g.handle(err, logfields.EntrySource(entry.Source))
			continue
		}
		g.report.Entries++
		g.recorder.IncPageWritten(metrics.PageKindEntry)
		if g.manifest != nil {
			g.manifest.Add(filepath.ToSlash(res.Output), entry.Source, res.Raw)
		}
		slog.Info("Rendered entry",
			logfields.EntrySource(entry.Source),
			logfields.Output(res.Output),
			slog.String("id", res.Record.ID))
	}
	return nil
}

func (g *Generator) checkLinks() error {
	broken, err := linkcheck.Check(g.outputDir, g.config.BaseURL)
	if err != nil {
		g.handle(errors.WrapError(err, errors.GetCategory(err), "link check failed").Warning().Build())
		return nil
	}
	for _, b := range broken {
		g.report.BrokenLinks++
		g.handle(errors.NewError(errors.CategoryValidation, "broken internal link").Warning().
			WithContext("page", b.Page).
			WithContext("link", b.Link).
			WithContext("target", b.Target).Build())
	}
	return nil
}

// prepareOutput resets the output directory and writes the static assets.
func (g *Generator) prepareOutput() error {
	am := assets.NewManager(g.outputDir, g.config.Build.AssetsDir)
	if err := am.SetupOutputDirectory(); err != nil {
		return err
	}

	copied, err := am.CopyCustomAssets()
	g.report.AssetsCopied = copied
	if err != nil {
		g.handle(err)
	}

	if err := am.GenerateStylesheet(g.config.Theme); err != nil {
		return errors.WrapError(err, errors.GetCategory(err), "failed to generate stylesheet").Fatal().Build()
	}
	if err := am.GenerateScript(); err != nil {
		return err
	}
	slog.Debug("Prepared output directory", logfields.Output(g.outputDir), slog.Int("custom_assets", copied))
	return nil
}

// runStage times fn and records its result. Issues handled inside the stage
// mark it as a warning.
func (g *Generator) runStage(stage string, fn func() error) error {
	start := time.Now()
	issues := len(g.report.Warnings) + len(g.report.Errors)

	err := fn()

	d := time.Since(start)
	g.report.StageDurations[stage] = d
	g.recorder.ObserveStageDuration(stage, d)

	result := resultFor(err)
	if err == nil && len(g.report.Warnings)+len(g.report.Errors) > issues {
		result = metrics.ResultWarning
	}
	g.recorder.IncStageResult(stage, result)
	slog.Debug("Stage finished", logfields.Stage(stage), logfields.DurationMS(float64(d.Microseconds())/1000))
	return err
}

// handle logs a recoverable problem and files it in the report.
func (g *Generator) handle(err error, attrs ...any) {
	if err == nil {
		return
	}
	g.report.record(err)

	msg := err.Error()
	args := append([]any{}, attrs...)
	if classified, ok := errors.AsClassified(err); ok {
		msg = classified.Message()
		args = append(args, classified.LogAttrs()...)
	} else {
		args = append(args, logfields.Error(err))
	}

	if errors.HasSeverity(err, errors.SeverityWarning) || errors.HasSeverity(err, errors.SeverityInfo) {
		slog.Warn(msg, args...)
		return
	}
	slog.Error(msg, args...)
}

func (g *Generator) fail(err error) (*Report, error) {
	if g.report.Outcome == "" {
		g.report.Outcome = OutcomeFailed
	}
	g.report.Errors = append(g.report.Errors, err)
	g.finish()
	return g.report, err
}

// finish closes the report and writes the optional build artifacts.
func (g *Generator) finish() {
	g.report.finish()
	g.recorder.ObserveBuildDuration(g.report.Duration())
	g.recorder.IncBuildOutcome(string(g.report.Outcome))

	if g.manifest != nil {
		g.manifest.Status = string(g.report.Outcome)
		g.manifest.Duration = g.report.Duration().Milliseconds()
		g.manifest.Warnings = len(g.report.Warnings)
		if err := g.manifest.Write(filepath.Join(g.outputDir, manifest.FileName)); err != nil {
			slog.Warn("Failed to write build manifest", logfields.Error(err))
		}
	}

	if path := g.config.Build.MetricsFile; path != "" {
		w, ok := g.recorder.(textfileWriter)
		if !ok {
			slog.Debug("Metrics recorder cannot write a textfile", logfields.Path(path))
			return
		}
		if err := w.WriteTextfile(path); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
		}
	}
}
