// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrCopyFile indicates a single file could not be copied.
var ErrCopyFile = errors.New("copying file failed")

// Permissions for generated output.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	// #nosec G306 -- generated site files are meant to be readable
	if err := os.WriteFile(path, content, FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CopyFile copies the regular file src to dst, replacing dst.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src) // #nosec G304 -- caller-provided vault path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFile, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FilePerm) // #nosec G304 -- output path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFile, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrCopyFile, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFile, err)
	}
	return nil
}

// CopyReport describes a CopyDirFiles run.
type CopyReport struct {
	Copied int
	// Failed holds one error per file that could not be copied.
	Failed []error
}

// CopyDirFiles copies the regular files directly inside srcDir into dstDir.
// Subdirectories are not descended into. A failure on one file is recorded
// in the report and the remaining files are still copied; only an
// unreadable srcDir or an uncreatable dstDir returns an error.
func CopyDirFiles(srcDir, dstDir string) (CopyReport, error) {
	var report CopyReport

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return report, fmt.Errorf("reading %s: %w", srcDir, err)
	}
	if err := os.MkdirAll(dstDir, DirPerm); err != nil {
		return report, fmt.Errorf("creating %s: %w", dstDir, err)
	}

	for _, e := range entries {
		src := filepath.Join(srcDir, e.Name())
		info, err := os.Stat(src)
		if err != nil {
			report.Failed = append(report.Failed, fmt.Errorf("%s: %w", src, err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if err := CopyFile(src, filepath.Join(dstDir, e.Name())); err != nil {
			report.Failed = append(report.Failed, fmt.Errorf("%s: %w", src, err))
			continue
		}
		report.Copied++
	}

	return report, nil
}
