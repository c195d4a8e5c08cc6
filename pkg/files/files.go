// Package files holds small helpers buildpacks use to inspect application sources.
package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/internal/style"
)

func ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", style.Symbol(path))
	}
	return content, nil
}

func ReadFileToString(path string) (string, error) {
	content, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// WriteFile creates or truncates the file at path.
func WriteFile(path string, content []byte) error {
	if err := os.WriteFile(filepath.Clean(path), content, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", style.Symbol(path))
	}
	return nil
}

// Join removes every line ending from src.
func Join(src []byte) []byte {
	lines := strings.Split(string(src), "\n")
	var b strings.Builder
	b.Grow(len(src))
	for _, line := range lines {
		b.WriteString(strings.TrimSuffix(line, "\r"))
	}
	return []byte(b.String())
}

// ReadFileJoin reads the file at path with its line endings removed.
func ReadFileJoin(path string) ([]byte, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Join(content), nil
}

// FindOneFile reports whether any regular file under dir contains the annotation @word, ignoring case.
// Unreadable entries are skipped.
func FindOneFile(dir, word string) bool {
	pattern := annotationPattern(word)

	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if pattern.Match(content) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func annotationPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`@\b(?i:` + regexp.QuoteMeta(word) + `)\b`)
}
