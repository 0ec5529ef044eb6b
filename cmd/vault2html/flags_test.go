package main

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		check    func(t *testing.T, f *cliFlags)
		wantArgs int
	}{
		{
			name:  "defaults",
			args:  nil,
			check: func(t *testing.T, f *cliFlags) { t.Helper(); assertEqual(t, *f, cliFlags{}) },
		},
		{
			name: "all long flags",
			args: []string{
				"--config", "site", "--title", "T", "--stylesheet", "s.css", "--assets", "a",
				"--workers", "3", "--no-lazy-media", "--verbose", "--quiet", "--version", "--print-config",
				"vault", "dist",
			},
			check: func(t *testing.T, f *cliFlags) {
				t.Helper()
				assertEqual(t, *f, cliFlags{
					config: "site", title: "T", stylesheet: "s.css", assets: "a", workers: 3,
					noLazyMedia: true, verbose: true, quiet: true, version: true, printConfig: true,
				})
			},
			wantArgs: 2,
		},
		{
			name: "short flags",
			args: []string{"-c", "site", "-w", "2", "-v", "vault"},
			check: func(t *testing.T, f *cliFlags) {
				t.Helper()
				assertEqual(t, *f, cliFlags{config: "site", workers: 2, verbose: true})
			},
			wantArgs: 1,
		},
		{
			name: "flags after positionals",
			args: []string{"vault", "-q"},
			check: func(t *testing.T, f *cliFlags) {
				t.Helper()
				assertEqual(t, *f, cliFlags{quiet: true})
			},
			wantArgs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, args, err := parseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			tt.check(t, f)
			if len(args) != tt.wantArgs {
				t.Errorf("positional args = %v, want %d", args, tt.wantArgs)
			}
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := parseFlags([]string{"--help"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("--help error = %v, want flag.ErrHelp", err)
	}
	if _, _, err := parseFlags([]string{"--workers", "many"}, io.Discard); err == nil {
		t.Error("non-numeric --workers accepted")
	}
}

func assertEqual(t *testing.T, got, want cliFlags) {
	t.Helper()
	if got != want {
		t.Errorf("flags = %+v, want %+v", got, want)
	}
}
