package vault2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadRootDocument = errors.New("failed to read root document")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrRenderSection    = errors.New("section rendering failed")
	ErrInvalidConfig    = errors.New("invalid configuration")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrAssetLoad        = errors.New("failed to load asset")
)
