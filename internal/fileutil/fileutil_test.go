package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileAndDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "MAIN.md")
	if err := os.WriteFile(file, []byte("# A"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		wantFile   bool
		wantDirect bool
	}{
		{name: "file", path: file, wantFile: true},
		{name: "directory", path: dir, wantDirect: true},
		{name: "missing", path: filepath.Join(dir, "nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.wantFile)
			}
			if got := DirExists(tt.path); got != tt.wantDirect {
				t.Errorf("DirExists(%q) = %v, want %v", tt.path, got, tt.wantDirect)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"vault2html", false},
		{"my-config", false},
		{"./site.yaml", true},
		{"../shared/site.yaml", true},
		{`C:\config\site.yaml`, true},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dist", "nested", "index.html")
	if err := WriteFile(path, []byte("<html></html>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(got) != "<html></html>" {
		t.Errorf("content = %q", got)
	}
}

func TestCopyDirFiles(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "attachments")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for name, content := range map[string]string{
		"graph.png":       "png",
		"clip.mp4":        "mp4",
		"nested/deep.png": "deep",
	} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	dst := filepath.Join(t.TempDir(), "out", "attachments")
	report, err := CopyDirFiles(src, dst)
	if err != nil {
		t.Fatalf("CopyDirFiles() error = %v", err)
	}
	if report.Copied != 2 {
		t.Errorf("Copied = %d, want 2", report.Copied)
	}
	if len(report.Failed) != 0 {
		t.Errorf("Failed = %v, want none", report.Failed)
	}
	if got, _ := os.ReadFile(filepath.Join(dst, "graph.png")); string(got) != "png" {
		t.Errorf("graph.png content = %q", got)
	}
	if DirExists(filepath.Join(dst, "nested")) {
		t.Error("subdirectory was copied, want files only")
	}
}

func TestCopyDirFiles_MissingSource(t *testing.T) {
	t.Parallel()

	_, err := CopyDirFiles(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyDirFiles() error = %v, want os.ErrNotExist", err)
	}
}

func TestCopyDirFiles_OneFailureDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	src := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(name), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := os.Chmod(filepath.Join(src, "b.png"), 0o000); err != nil {
		t.Fatalf("setup chmod: %v", err)
	}

	report, err := CopyDirFiles(src, t.TempDir())
	if err != nil {
		t.Fatalf("CopyDirFiles() error = %v", err)
	}
	if report.Copied != 2 {
		t.Errorf("Copied = %d, want 2", report.Copied)
	}
	if len(report.Failed) != 1 || !errors.Is(report.Failed[0], ErrCopyFile) {
		t.Errorf("Failed = %v, want one ErrCopyFile", report.Failed)
	}
}
