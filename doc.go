// Package vault2html converts a vault of Markdown notes into one static
// HTML page.
//
// # Quick Start
//
// Create a builder for a vault directory and an output directory, then
// build:
//
//	b, err := vault2html.NewBuilder("notes", "dist")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath)
//
// # Build Pipeline
//
// A build follows these stages:
//
//  1. Index the media directories (attachments and drawings)
//  2. Read the root document and split it at top-level headings
//  3. Render each section body: embeds, vault syntax, Markdown via goldmark
//  4. Assemble the page from the page template
//  5. Write index.html, media files, the stylesheet and the browser script
//
// Sections render concurrently (see WithWorkers); page order always
// follows the root document.
//
// # Vault Layout
//
//	notes/
//	├── MAIN.md          root document, one "# Heading" per section
//	├── styles.css       copied to the output, built-in stylesheet if absent
//	├── attachments/     images, videos and vector graphics
//	└── Excalidraw/      drawing archives
//
// Embeds use ![[name]]; names without an extension are inferred. An embed
// that cannot be resolved or rendered becomes a visible indicator in the
// page and never fails the build.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	cfg, err := config.LoadConfig("vault2html")
//	b, err := vault2html.NewBuilder("notes", "dist",
//	    vault2html.WithConfig(cfg),
//	    vault2html.WithTitle("Microeconomics"),
//	    vault2html.WithWorkers(4),
//	    vault2html.WithLogger(slog.Default()),
//	)
//
// # Custom Assets
//
// WithAssetPath points at a directory overriding the embedded assets:
//
//	assets/
//	├── styles/default.css
//	├── templates/page.html
//	└── scripts/script.js
//
// Missing files fall back to the embedded versions.
package vault2html
