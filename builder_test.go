package vault2html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alnah/go-vault2html/internal/assets"
	"github.com/alnah/go-vault2html/internal/config"
	"github.com/alnah/go-vault2html/internal/drawing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Vault fixtures
// ---------------------------------------------------------------------------

const plainDrawing = "# Excalidraw Data\n\n## Drawing\n```json\n{\"type\":\"excalidraw\",\"elements\":[{\"id\":\"a\",\"fontFamily\":6}]}\n```\n"

const mainDocument = `Preamble that belongs to no section.

# Supply & Demand

Prices move along [[Supply Curve]].

![[graph.png]]

# Elasticity

> [!note] Definition
> Responsiveness of quantity to price.

![[missing-figure]]
`

// writeVault creates a vault under a temp dir from name -> content pairs.
func writeVault(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func build(t *testing.T, source string, opts ...Option) (*Result, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "dist")
	b, err := NewBuilder(source, out, opts...)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return res, out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestBuilder_Build - Full pipeline
// ---------------------------------------------------------------------------

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{
		"MAIN.md":                mainDocument,
		"attachments/graph.png":  "png-bytes",
		"attachments/notes.txt":  "unused",
		"Excalidraw/unused.md":   plainDrawing,
		"styles.css":             "body { color: red; }",
		"attachments/sub/nested": "skipped",
	})

	res, out := build(t, source, WithTitle("Micro"))

	if res.Sections != 2 {
		t.Errorf("Sections = %d, want 2", res.Sections)
	}
	if res.MediaFiles != 3 {
		t.Errorf("MediaFiles = %d, want 3", res.MediaFiles)
	}
	if res.Embeds != 2 || res.FailedEmbeds != 1 {
		t.Errorf("Embeds = %d, FailedEmbeds = %d, want 2 and 1", res.Embeds, res.FailedEmbeds)
	}
	if res.UsesDrawingRuntime {
		t.Error("UsesDrawingRuntime = true without drawing embeds")
	}
	if res.OutputPath != filepath.Join(out, IndexFile) {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}

	page := readFile(t, res.OutputPath)
	for _, want := range []string{
		"<title>Micro</title>",
		`<section id="supply-demand"`,
		`<section id="elasticity"`,
		`href="#supply-curve" class="wikilink"`,
		`src="attachments/graph.png"`,
		`loading="lazy"`,
		`class="callout callout-note"`,
		"Missing: missing-figure",
		`href="styles.css"`,
		`src="script.js"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "Preamble") {
		t.Error("text before the first heading was rendered")
	}
	if strings.Contains(page, drawing.RuntimeBundle()) {
		t.Error("drawing runtime included without drawings")
	}

	if got := readFile(t, filepath.Join(out, "attachments", "graph.png")); got != "png-bytes" {
		t.Errorf("copied attachment = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "Excalidraw", "unused.md")); got != plainDrawing {
		t.Error("drawings directory not copied")
	}
	if _, err := os.Stat(filepath.Join(out, "attachments", "sub")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("subdirectory of attachments was copied")
	}
	if got := readFile(t, filepath.Join(out, "styles.css")); got != "body { color: red; }" {
		t.Errorf("stylesheet = %q", got)
	}
	script, err := assets.LoadScript(assets.BrowserScriptName)
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if got := readFile(t, filepath.Join(out, ScriptFile)); got != script {
		t.Error("script.js differs from the embedded script")
	}
}

func TestBuilder_Build_SectionOrder(t *testing.T) {
	t.Parallel()

	var doc strings.Builder
	ids := make([]string, 40)
	for i := range ids {
		fmt.Fprintf(&doc, "# Unit %d\n\nBody %d with **bold**.\n\n", i, i)
		ids[i] = fmt.Sprintf(`<section id="unit-%d"`, i)
	}
	source := writeVault(t, map[string]string{"MAIN.md": doc.String()})

	res, _ := build(t, source, WithWorkers(8))
	page := readFile(t, res.OutputPath)

	last := -1
	for _, id := range ids {
		pos := strings.Index(page, id)
		if pos < 0 {
			t.Fatalf("page missing %s", id)
		}
		if pos < last {
			t.Fatalf("%s out of source order", id)
		}
		last = pos
	}
}

func TestBuilder_Build_DrawingRuntime(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{
		"MAIN.md":                        "# Graphs\n\n![[chart.excalidraw]]\n",
		"Excalidraw/chart.excalidraw.md": plainDrawing,
	})

	res, _ := build(t, source)
	if !res.UsesDrawingRuntime {
		t.Fatal("UsesDrawingRuntime = false with a drawing embed")
	}

	page := readFile(t, res.OutputPath)
	if strings.Count(page, drawing.RuntimeBundle()) != 1 {
		t.Error("drawing runtime not included exactly once")
	}
	if !strings.Contains(page, `"fontFamily":1`) {
		t.Error("drawing fonts not normalized")
	}
}

// ---------------------------------------------------------------------------
// TestBuilder_Build_Idempotent - Same vault, same output
// ---------------------------------------------------------------------------

// drawingID matches the random suffix of drawing container ids.
var drawingID = regexp.MustCompile(`_[0-9a-f]{8}\b`)

func TestBuilder_Build_Idempotent(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{
		"MAIN.md":                        mainDocument + "\n# Drawings\n\n![[chart.excalidraw]]\n",
		"attachments/graph.png":          "png",
		"Excalidraw/chart.excalidraw.md": plainDrawing,
	})

	first, _ := build(t, source)
	second, _ := build(t, source)

	a := drawingID.ReplaceAllString(readFile(t, first.OutputPath), "_ID")
	b := drawingID.ReplaceAllString(readFile(t, second.OutputPath), "_ID")
	if a != b {
		t.Error("two builds of the same vault differ beyond drawing ids")
	}
}

// ---------------------------------------------------------------------------
// TestBuilder_Build_Recovered - Failures that do not abort the build
// ---------------------------------------------------------------------------

func TestBuilder_Build_MissingStylesheetUsesBuiltIn(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{"MAIN.md": "# Only\n\ntext\n"})
	_, out := build(t, source)

	want, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got := readFile(t, filepath.Join(out, "styles.css")); got != want {
		t.Error("missing stylesheet not replaced by the built-in one")
	}
}

func TestBuilder_Build_NoMediaDirectories(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{"MAIN.md": "# A\n\n![[anything]]\n"})
	res, out := build(t, source)

	if res.MediaFiles != 0 || res.FailedEmbeds != 1 {
		t.Errorf("MediaFiles = %d, FailedEmbeds = %d, want 0 and 1", res.MediaFiles, res.FailedEmbeds)
	}
	if _, err := os.Stat(filepath.Join(out, "attachments")); !errors.Is(err, fs.ErrNotExist) {
		t.Error("attachments directory created without a source")
	}
}

func TestBuilder_Build_LazyMediaDisabled(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{
		"MAIN.md":               "# A\n\n![[graph.png]]\n",
		"attachments/graph.png": "png",
	})
	res, _ := build(t, source, WithLazyMedia(false))

	if strings.Contains(readFile(t, res.OutputPath), `loading="lazy"`) {
		t.Error("lazy loading added while disabled")
	}
}

func TestBuilder_Build_CustomMediaDirs(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Vault.RootDocument = "index.md"
	cfg.Vault.AttachmentsDir = "media"

	source := writeVault(t, map[string]string{
		"index.md":        "# A\n\n![[pic]]\n",
		"media/pic.jpg":   "jpg",
		"attachments/x.y": "ignored",
	})
	res, out := build(t, source, WithConfig(cfg))

	if !strings.Contains(readFile(t, res.OutputPath), `src="media/pic.jpg"`) {
		t.Error("embed not resolved in the configured attachments directory")
	}
	if _, err := os.Stat(filepath.Join(out, "media", "pic.jpg")); err != nil {
		t.Errorf("configured media directory not copied: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuilder_Build_Fatal - Failures that abort the build
// ---------------------------------------------------------------------------

func TestBuilder_Build_MissingRootDocument(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(t.TempDir(), filepath.Join(t.TempDir(), "dist"))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	_, err = b.Build(context.Background())
	if !errors.Is(err, ErrReadRootDocument) {
		t.Errorf("error = %v, want ErrReadRootDocument", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestBuilder_Build_UnwritableOutput(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{"MAIN.md": "# A\n\ntext\n"})
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := NewBuilder(source, filepath.Join(blocker, "dist"))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if _, err := b.Build(context.Background()); !errors.Is(err, ErrWriteOutput) {
		t.Errorf("error = %v, want ErrWriteOutput", err)
	}
}

func TestBuilder_Build_Cancelled(t *testing.T) {
	t.Parallel()

	source := writeVault(t, map[string]string{"MAIN.md": "# A\n\ntext\n"})
	b, err := NewBuilder(source, filepath.Join(t.TempDir(), "dist"))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestNewBuilder - Construction and options
// ---------------------------------------------------------------------------

func TestNewBuilder_Errors(t *testing.T) {
	t.Parallel()

	badWorkers := config.DefaultConfig()
	badWorkers.Render.Workers = -1

	escaping := config.DefaultConfig()
	escaping.Vault.AttachmentsDir = "../outside"

	tests := []struct {
		name    string
		opts    []Option
		wantErr []error
	}{
		{name: "invalid workers", opts: []Option{WithConfig(badWorkers)}, wantErr: []error{ErrInvalidConfig, config.ErrInvalidValue}},
		{name: "escaping media dir", opts: []Option{WithConfig(escaping)}, wantErr: []error{ErrInvalidConfig, config.ErrInvalidValue}},
		{name: "title too long", opts: []Option{WithTitle(strings.Repeat("x", config.MaxTitleLength+1))}, wantErr: []error{ErrInvalidConfig, config.ErrFieldTooLong}},
		{name: "missing asset path", opts: []Option{WithAssetPath(filepath.Join(t.TempDir(), "nope"))}, wantErr: []error{ErrInvalidAssetPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBuilder(".", "", tt.opts...)
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestNewBuilder_OverridesApplyAfterConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Site.Title = "From Config"
	cfg.Style.Stylesheet = "config.css"

	b, err := NewBuilder(".", "", WithTitle("From Flag"), WithConfig(cfg), WithStylesheet("theme/flag.css"))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	got := b.Config()
	if got.Site.Title != "From Flag" {
		t.Errorf("Site.Title = %q, want From Flag", got.Site.Title)
	}
	if got.Style.Stylesheet != "theme/flag.css" {
		t.Errorf("Style.Stylesheet = %q, want theme/flag.css", got.Style.Stylesheet)
	}
	if cfg.Site.Title != "From Config" {
		t.Error("WithConfig modified the caller's config")
	}
	if b.output != config.DefaultOutputDir {
		t.Errorf("output = %q, want %q", b.output, config.DefaultOutputDir)
	}
}

func TestBuilder_Build_CustomAssets(t *testing.T) {
	t.Parallel()

	assetDir := writeVault(t, map[string]string{
		"templates/page.html": `<main>{{range .Sections}}[{{.ID}}]{{end}}</main>`,
	})
	source := writeVault(t, map[string]string{"MAIN.md": "# One\n\n# Two\n"})

	res, out := build(t, source, WithAssetPath(assetDir))

	if got := readFile(t, res.OutputPath); got != "<main>[one][two]</main>" {
		t.Errorf("page = %q", got)
	}
	script, err := assets.LoadScript(assets.BrowserScriptName)
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if readFile(t, filepath.Join(out, ScriptFile)) != script {
		t.Error("script did not fall back to the embedded one")
	}
}
