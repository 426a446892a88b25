package envfile

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSeparator = errors.New("key and value must be separated by `=`")
	ErrKeyWhitespace    = errors.New("key cannot contain whitespaces")
	ErrInvalidUTF8      = errors.New("stream did not contain valid UTF-8")
)

// Error is the closed set of failures produced while reading an env file:
// *SyntaxError and *IOError.
type Error interface {
	error
	envfileError()
}

// SyntaxError reports a malformed line. Err is one of ErrMissingSeparator or
// ErrKeyWhitespace. Line is 1-based; zero means the line number is unknown.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func (*SyntaxError) envfileError() {}

// IOError wraps a failure to open or read an env file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("I/O error: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("I/O error: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (*IOError) envfileError() {}

func wrapIO(path string, err error) error {
	if err == nil {
		return nil
	}
	var ee Error
	if errors.As(err, &ee) {
		return err
	}
	return &IOError{Path: path, Err: err}
}
