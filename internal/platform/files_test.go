package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"orthophoto.tif", "orthophoto.tif"},
		{"a/b:c*d", "abcd"},
		{`field<survey>"2026"`, "fieldsurvey2026"},
		{"trailing... ", "trailing"},
		{"  spaced name  ", "spaced name"},
		{"", "task"},
		{`///***`, "task"},
	}

	for _, test := range tests {
		got := SanitizeFilename(test.input)
		if got != test.expected {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", test.input, got, test.expected)
		}
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("SanitizeFilename(%q) left hostile characters: %q", test.input, got)
		}
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	long := strings.Repeat("x", 400)
	got := SanitizeFilename(long)
	if len([]rune(got)) != MaxFilenameLength {
		t.Errorf("expected %d runes, got %d", MaxFilenameLength, len([]rune(got)))
	}
}

func TestFilterExisting(t *testing.T) {
	dir := t.TempDir()

	present := filepath.Join(dir, "IMG_0001.jpg")
	if err := os.WriteFile(present, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	missing := filepath.Join(dir, "IMG_0002.jpg")

	got := FilterExisting([]string{missing, present, dir})

	if len(got) != 1 || got[0] != present {
		t.Errorf("FilterExisting returned %v, expected [%s]", got, present)
	}
}

func TestFilterExistingPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.jpg", "a.jpg", "b.jpg"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		paths = append(paths, p)
	}

	got := FilterExisting(paths)
	if len(got) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(got))
	}
	for i := range paths {
		if got[i] != paths[i] {
			t.Errorf("order not preserved at %d: got %s, expected %s", i, got[i], paths[i])
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", dir)
	}

	// Second call on an existing directory is a no-op.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir returned error: %v", err)
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"IMG_0001.jpg", "image/jpeg"},
		{"IMG_0002.png", "image/png"},
		{"mystery.bin2026", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, test := range tests {
		got := DetectContentType(test.path)
		// mime.TypeByExtension may append charset parameters on some
		// platforms; compare the media type prefix only.
		if !strings.HasPrefix(got, test.expected) {
			t.Errorf("DetectContentType(%q) = %q, expected prefix %q", test.path, got, test.expected)
		}
	}
}
