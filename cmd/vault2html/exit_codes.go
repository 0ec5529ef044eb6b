package main

import (
	"errors"

	flag "github.com/spf13/pflag"

	vault2html "github.com/alnah/go-vault2html"
	"github.com/alnah/go-vault2html/internal/config"
)

// Exit codes for the vault2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Site built
	ExitGeneral = 1 // Build failed
	ExitUsage   = 2 // Invalid flags, arguments or config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	if errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, vault2html.ErrInvalidConfig) ||
		errors.Is(err, vault2html.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
