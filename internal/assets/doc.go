// Package assets provides the page template, stylesheet and browser script
// written next to the generated page.
//
// A Loader reads one directory tree:
//
//	{base}/
//	├── styles/default.css
//	├── templates/page.html
//	└── scripts/script.js
//
// NewEmbeddedLoader reads the built-in tree compiled into the binary.
// NewFilesystemLoader reads a directory on disk through os.Root, so reads
// stay inside it even when it contains symlinks. AssetResolver layers a
// custom directory over the embedded tree; any single asset may be
// overridden.
package assets
