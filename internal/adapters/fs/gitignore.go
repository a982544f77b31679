package fs

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// GitignoreMatcher implements IgnoreMatcher with go-git's gitignore matcher.
type GitignoreMatcher struct {
	matcher gitignore.Matcher
}

// NewGitignoreMatcher loads the .gitignore in root.
// A missing file yields a matcher that never ignores.
func NewGitignoreMatcher(root string) (*GitignoreMatcher, error) {
	path := filepath.Join(root, domain.GitignoreFileName)

	//nolint:gosec // Path is the project root joined with a fixed name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &GitignoreMatcher{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitignoreReadFailed.Error()), "path", path)
	}

	return &GitignoreMatcher{matcher: gitignore.NewMatcher(parsePatterns(data))}, nil
}

func parsePatterns(data []byte) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}

// ShouldIgnore reports whether relativePath matches the loaded patterns.
func (m *GitignoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Match(splitPath(relativePath), isDir)
}

// splitPath splits a path into segments, dropping empty and "." segments.
func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
