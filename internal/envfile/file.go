package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

const maxLineSize = 512 * 1024

// Parse reads r line by line and returns the pairs in file order. Parsing
// stops at the first malformed line or read failure; no pairs are returned
// alongside an error. Input that is not UTF-8 is a read failure.
func Parse(r io.Reader) ([]Pair, error) {
	pairs := []Pair{}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, &IOError{Err: ErrInvalidUTF8}
		}
		p, ok, err := ParseLine(line)
		if err != nil {
			if se, isSyntax := err.(*SyntaxError); isSyntax {
				se.Line = lineNum
			}
			return nil, err
		}
		if ok {
			pairs = append(pairs, p)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, wrapIO("", err)
	}

	return pairs, nil
}

// BuildEnv opens and parses the env file at path.
func BuildEnv(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, wrapIO(path, err)
	}
	defer file.Close()

	pairs, err := Parse(file)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, err
	}
	return pairs, nil
}

// Apply calls setenv for each pair in order, so later duplicates win. It
// stops at the first failure and leaves already applied pairs in place.
func Apply(pairs []Pair, setenv func(key, value string) error) error {
	for _, p := range pairs {
		if err := setenv(p.Key, p.Value); err != nil {
			return fmt.Errorf("set %q: %w", p.Key, err)
		}
	}
	return nil
}

// Load parses the file at path and writes every pair into the process
// environment. There is no rollback: variables set before a failure stay set.
func Load(path string) error {
	pairs, err := BuildEnv(path)
	if err != nil {
		return err
	}
	return Apply(pairs, os.Setenv)
}

// LoadFiles loads each path in order and returns the number of pairs applied.
func LoadFiles(paths []string) (int, error) {
	total := 0
	for _, path := range paths {
		pairs, err := BuildEnv(path)
		if err != nil {
			return total, err
		}
		if err := Apply(pairs, os.Setenv); err != nil {
			return total, err
		}
		total += len(pairs)
	}
	return total, nil
}

// Collect parses every path in order and concatenates the results.
func Collect(paths []string) ([]Pair, error) {
	var all []Pair
	for _, path := range paths {
		pairs, err := BuildEnv(path)
		if err != nil {
			return nil, err
		}
		all = append(all, pairs...)
	}
	return all, nil
}

// ToMap collapses pairs with last-wins semantics.
func ToMap(pairs []Pair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}
