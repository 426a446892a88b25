package envfile

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const DefaultFile = ".env"

// Resolve turns -f arguments into an ordered list of files. Literal paths are
// kept as given (a missing one fails later when it is opened); glob patterns
// must match at least one file.
func Resolve(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return []string{DefaultFile}, nil
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, p)
	}

	for _, pattern := range patterns {
		if !IsGlob(pattern) {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no env files match %q", pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

// IsGlob reports whether pattern contains glob metacharacters.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
