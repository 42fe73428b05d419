package config

import "fmt"

// ParseError reports a config file that exists but is not a flat JSON object.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failed read, directory creation or write. Op is one of
// "read", "mkdir" or "write".
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ValueError reports a key whose value is not a string, finite float64, bool
// or nil. Loading a file with such a value fails with a ParseError wrapping it.
type ValueError struct {
	Key   string
	Value any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("key %q holds unsupported value %v (%T)", e.Key, e.Value, e.Value)
}
