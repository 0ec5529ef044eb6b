package vault2html

import (
	"log/slog"

	"github.com/alnah/go-vault2html/internal/config"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for progress and recovered failures.
// Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConfig replaces the default configuration. The Builder works on a
// copy, so later options do not modify cfg.
func WithConfig(cfg *config.Config) Option {
	return func(b *Builder) {
		if cfg != nil {
			c := *cfg
			b.cfg = &c
		}
	}
}

// WithWorkers bounds concurrent section rendering. Zero or less selects a
// value from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithTitle overrides the site title.
func WithTitle(title string) Option {
	return func(b *Builder) {
		b.overrides.title = title
	}
}

// WithStylesheet overrides the stylesheet copied next to index.html.
// Relative paths are resolved against the source directory.
func WithStylesheet(path string) Option {
	return func(b *Builder) {
		b.overrides.stylesheet = path
	}
}

// WithAssetPath sets a directory whose templates, styles and scripts take
// precedence over the embedded ones.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.overrides.assetPath = path
	}
}

// WithLazyMedia toggles lazy loading attributes on images and videos.
func WithLazyMedia(enabled bool) Option {
	return func(b *Builder) {
		b.overrides.lazyMedia = &enabled
	}
}
