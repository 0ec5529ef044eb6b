package vault2html

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-vault2html/internal/assets"
	"github.com/alnah/go-vault2html/internal/config"
	"github.com/alnah/go-vault2html/internal/drawing"
	"github.com/alnah/go-vault2html/internal/fileutil"
	"github.com/alnah/go-vault2html/internal/media"
	"github.com/alnah/go-vault2html/internal/pipeline"
)

// Output file names written next to the media directories.
const (
	IndexFile  = "index.html"
	ScriptFile = "script.js"
)

// Compile-time interface implementation checks.
var (
	_ media.EmbedRenderer    = (*media.Renderer)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
)

// Builder turns one vault into one static page.
// Create with NewBuilder, then call Build. A Builder may be reused; every
// Build re-reads the vault.
type Builder struct {
	source    string
	output    string
	cfg       *config.Config
	logger    *slog.Logger
	workers   int
	overrides overrides
	assets    assets.AssetLoader
}

// overrides are applied on top of the configuration after all options ran,
// so option order does not matter.
type overrides struct {
	title      string
	stylesheet string
	assetPath  string
	lazyMedia  *bool
}

// Result describes a completed build.
type Result struct {
	Sections     int
	MediaFiles   int
	Embeds       int
	FailedEmbeds int
	// UsesDrawingRuntime reports whether the drawing runtime was included.
	UsesDrawingRuntime bool
	// OutputPath is the path of the written index.html.
	OutputPath string
	Duration   time.Duration
}

// NewBuilder creates a Builder reading the vault at source and writing to
// output. An empty source means the current directory; an empty output
// means the configured output directory.
// Returns an error if the configuration is invalid or the asset path is
// unusable.
func NewBuilder(source, output string, opts ...Option) (*Builder, error) {
	b := &Builder{
		source: source,
		output: output,
		cfg:    config.DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.applyOverrides()
	b.cfg = b.cfg.WithDefaults()
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if b.source == "" {
		b.source = "."
	}
	if b.output == "" {
		b.output = b.cfg.Output.Dir
	}
	if b.workers <= 0 {
		b.workers = b.cfg.Render.Workers
	}
	b.workers = ResolveWorkers(b.workers)

	resolver, err := assets.NewAssetResolver(b.cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	b.assets = resolver
	b.logger.Debug("asset sources", "layers", resolver.Sources())

	return b, nil
}

func (b *Builder) applyOverrides() {
	if b.overrides.title != "" {
		b.cfg.Site.Title = b.overrides.title
	}
	if b.overrides.stylesheet != "" {
		b.cfg.Style.Stylesheet = b.overrides.stylesheet
	}
	if b.overrides.assetPath != "" {
		b.cfg.Assets.BasePath = b.overrides.assetPath
	}
	if b.overrides.lazyMedia != nil {
		b.cfg.Render.LazyMedia = b.overrides.lazyMedia
	}
}

// Config returns the effective configuration, defaults and overrides
// applied.
func (b *Builder) Config() config.Config {
	return *b.cfg
}

// Build runs the whole pipeline: index media, split the root document,
// render sections, assemble the page and write the site.
// Only an unreadable root document, a failed section render (including
// cancellation) or an unwritable index.html abort the build; media and
// stylesheet problems are logged and the build continues.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	vault := os.DirFS(b.source)
	dirs := b.mediaDirs()
	index := media.BuildIndex(vault, dirs, b.logger)

	rootPath := filepath.Join(b.source, b.cfg.Vault.RootDocument)
	raw, err := os.ReadFile(rootPath) // #nosec G304 -- root document named by the user
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadRootDocument, rootPath, err)
	}

	sections := pipeline.SplitSections(string(raw))
	b.logger.Info("parsed sections", "count", len(sections))

	renderer := media.NewRenderer(vault, media.NewResolver(index, dirs, b.logger), b.logger)
	proc := pipeline.NewProcessor(renderer,
		pipeline.WithProcessorHighlightStyle(b.cfg.Style.Highlight),
		pipeline.WithProcessorLogger(b.logger),
	)

	result := &Result{Sections: len(sections), MediaFiles: index.Len()}
	if err := b.renderSections(ctx, proc, sections, result); err != nil {
		return nil, err
	}

	page, err := b.assemble(ctx, sections, result.UsesDrawingRuntime)
	if err != nil {
		return nil, err
	}

	result.OutputPath = filepath.Join(b.output, IndexFile)
	if err := fileutil.WriteFile(result.OutputPath, []byte(page)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	b.logger.Info("wrote page", "path", result.OutputPath)

	b.copyMedia(dirs)
	if err := b.writeStylesheet(); err != nil {
		return nil, err
	}
	if err := b.writeScript(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// mediaDirs returns the media directories in resolution order.
func (b *Builder) mediaDirs() []string {
	return []string{
		filepath.ToSlash(filepath.Clean(b.cfg.Vault.AttachmentsDir)),
		filepath.ToSlash(filepath.Clean(b.cfg.Vault.DrawingsDir)),
	}
}

// renderSections renders every section body with at most b.workers
// running at once. Results land at their section's index, so output order
// is source order regardless of completion order.
func (b *Builder) renderSections(ctx context.Context, proc *pipeline.Processor, sections []pipeline.Section, result *Result) error {
	rendered := make([]pipeline.Rendered, len(sections))
	lazy := b.cfg.Render.LazyMediaEnabled()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range sections {
		g.Go(func() error {
			s := sections[i]
			r, err := proc.Process(gctx, s.ID, s.RawBody)
			if err != nil {
				return fmt.Errorf("%w: %q: %w", ErrRenderSection, s.Title, err)
			}
			if lazy {
				decorated, err := pipeline.DecorateMedia(r.HTML)
				if err != nil {
					return fmt.Errorf("%w: %q: %w", ErrRenderSection, s.Title, err)
				}
				r.HTML = decorated
			}
			rendered[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, r := range rendered {
		sections[i].RenderedBody = r.HTML
		result.Embeds += r.Embeds
		result.FailedEmbeds += r.FailedEmbeds
		result.UsesDrawingRuntime = result.UsesDrawingRuntime || r.UsesDrawingRuntime
	}
	if result.FailedEmbeds > 0 {
		b.logger.Warn("some embeds could not be rendered", "failed", result.FailedEmbeds, "total", result.Embeds)
	}
	return nil
}

func (b *Builder) assemble(ctx context.Context, sections []pipeline.Section, usesRuntime bool) (string, error) {
	tmpl, err := b.assets.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	asm, err := pipeline.NewAssembler(tmpl)
	if err != nil {
		return "", err
	}

	page := pipeline.NewPage(sections, pipeline.PageOptions{
		Title:              b.cfg.Site.Title,
		Lang:               b.cfg.Site.Lang,
		Stylesheet:         filepath.Base(b.cfg.Style.Stylesheet),
		Script:             ScriptFile,
		UsesDrawingRuntime: usesRuntime,
		Runtime:            drawing.RuntimeBundle(),
	})
	return asm.Assemble(ctx, page)
}

// copyMedia copies the files of each media directory that exists into the
// output. Failures are logged; they never abort the build.
func (b *Builder) copyMedia(dirs []string) {
	for _, dir := range dirs {
		src := filepath.Join(b.source, filepath.FromSlash(dir))
		if !fileutil.DirExists(src) {
			continue
		}
		report, err := fileutil.CopyDirFiles(src, filepath.Join(b.output, filepath.FromSlash(dir)))
		if err != nil {
			b.logger.Warn("copying media directory", "dir", dir, "err", err)
			continue
		}
		for _, ferr := range report.Failed {
			b.logger.Warn("copying media file", "err", ferr)
		}
		b.logger.Debug("copied media", "dir", dir, "files", report.Copied)
	}
}

// writeStylesheet copies the configured stylesheet next to index.html. A
// missing stylesheet is replaced by the built-in one.
func (b *Builder) writeStylesheet() error {
	name := b.cfg.Style.Stylesheet
	src := name
	if !filepath.IsAbs(src) {
		src = filepath.Join(b.source, src)
	}
	dst := filepath.Join(b.output, filepath.Base(name))

	if fileutil.FileExists(src) {
		if err := fileutil.CopyFile(src, dst); err != nil {
			b.logger.Warn("copying stylesheet", "path", src, "err", err)
		} else {
			return nil
		}
	} else {
		b.logger.Warn("stylesheet not found, using built-in stylesheet", "path", src)
	}

	css, err := b.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	if err := fileutil.WriteFile(dst, []byte(css)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func (b *Builder) writeScript() error {
	script, err := b.assets.LoadScript(assets.BrowserScriptName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	if err := fileutil.WriteFile(filepath.Join(b.output, ScriptFile), []byte(script)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
