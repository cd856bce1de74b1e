package platform

import (
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Filename limits
const (
	MaxFilenameLength = 150

	// FallbackFilename is used when sanitization leaves nothing usable.
	FallbackFilename = "task"
)

// hostileChars are characters rejected by at least one supported filesystem.
const hostileChars = `<>:"/\|?*`

// SanitizeFilename makes a server-supplied name safe to use as a local file
// or directory name: path-hostile characters are removed, trailing dots and
// spaces trimmed, the result truncated to MaxFilenameLength runes. An empty
// result falls back to FallbackFilename.
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(hostileChars, r) {
			return -1
		}
		return r
	}, name)

	cleaned = strings.TrimRight(cleaned, ". ")
	cleaned = strings.TrimSpace(cleaned)

	if runes := []rune(cleaned); len(runes) > MaxFilenameLength {
		cleaned = strings.TrimRight(string(runes[:MaxFilenameLength]), ". ")
	}

	if cleaned == "" {
		return FallbackFilename
	}
	return cleaned
}

// FilterExisting returns the subset of paths that exist as regular files,
// preserving input order.
func FilterExisting(paths []string) []string {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		existing = append(existing, p)
	}
	return existing
}

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DetectContentType guesses the MIME type of a file from its extension,
// falling back to application/octet-stream.
func DetectContentType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
