package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	vault2html "github.com/alnah/go-vault2html"
	"github.com/alnah/go-vault2html/internal/config"
	"github.com/alnah/go-vault2html/internal/fileutil"
	"github.com/alnah/go-vault2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxArgs is the number of positional arguments: source and output.
const maxArgs = 2

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:], env.Stderr)
	if err != nil {
		if code := exitCodeFor(err); code == ExitSuccess {
			return code
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "vault2html %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.verbose, flags.quiet)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()

	warnUnknownEnvVars(env.Environ(), logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, flags, positional, env, logger); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run loads configuration, builds the site and reports the result.
func run(ctx context.Context, flags *cliFlags, positional []string, env *Environment, logger *slog.Logger) error {
	if len(positional) > maxArgs {
		return fmt.Errorf("%w: want at most %d, got %d", ErrTooManyArgs, maxArgs, len(positional))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	configName := flags.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	source, output := ".", ""
	if len(positional) > 0 {
		source = positional[0]
	}
	if len(positional) > 1 {
		output = positional[1]
	}

	b, err := vault2html.NewBuilder(source, output, builderOptions(flags, cfg, logger)...)
	if err != nil {
		if errors.Is(err, vault2html.ErrInvalidAssetPath) {
			return fmt.Errorf("%w%s", err, hints.ForAssetPath())
		}
		return err
	}
	effective := b.Config()

	if flags.printConfig {
		data, err := effective.Dump()
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	res, err := b.Build(ctx)
	if err != nil {
		return withHint(err, source, effective)
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Built %d sections (%d embeds, %d failed) in %s\n",
			res.Sections, res.Embeds, res.FailedEmbeds, res.Duration.Round(time.Millisecond))
		fmt.Fprintf(env.Stdout, "Output: %s\n", res.OutputPath)
	}
	return nil
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// builderOptions maps flags to builder options. Flags left at their zero
// value keep the configured value.
func builderOptions(flags *cliFlags, cfg *config.Config, logger *slog.Logger) []vault2html.Option {
	opts := []vault2html.Option{
		vault2html.WithConfig(cfg),
		vault2html.WithLogger(logger),
		vault2html.WithTitle(flags.title),
		vault2html.WithStylesheet(flags.stylesheet),
		vault2html.WithAssetPath(flags.assets),
	}
	if flags.workers > 0 {
		opts = append(opts, vault2html.WithWorkers(flags.workers))
	}
	if flags.noLazyMedia {
		opts = append(opts, vault2html.WithLazyMedia(false))
	}
	return opts
}

// withHint appends an actionable hint to fatal build errors.
func withHint(err error, source string, cfg config.Config) error {
	switch {
	case errors.Is(err, vault2html.ErrReadRootDocument):
		return fmt.Errorf("%w%s", err, hints.ForRootDocument(source, cfg.Vault.RootDocument))
	case errors.Is(err, vault2html.ErrWriteOutput):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	return err
}

// validateWorkers rejects worker counts outside 0..config.MaxWorkers.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: must be between 0 and %d, got %d", ErrInvalidWorkerCount, config.MaxWorkers, n)
	}
	return nil
}
