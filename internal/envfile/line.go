package envfile

import (
	"strings"
	"unicode"
)

type Pair struct {
	Key   string
	Value string
}

// ParseLine classifies a single line. ok is false for blank lines and
// full-line comments. Only leading whitespace is trimmed; the value is
// everything after the first '=' verbatim.
func ParseLine(line string) (p Pair, ok bool, err error) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Pair{}, false, nil
	}

	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return Pair{}, false, &SyntaxError{Err: ErrMissingSeparator}
	}
	if err := ValidateKey(key); err != nil {
		return Pair{}, false, err
	}
	return Pair{Key: key, Value: value}, true, nil
}

// ValidateKey reports whether key could appear on the left of a line.
func ValidateKey(key string) error {
	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return &SyntaxError{Err: ErrKeyWhitespace}
	}
	if strings.Contains(key, "=") {
		return &SyntaxError{Err: ErrMissingSeparator}
	}
	return nil
}
