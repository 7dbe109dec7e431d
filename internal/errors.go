package internal

import "fmt"

// ParseError describes a header line whose date or time could not be read
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StorageError represents errors accessing transcripts, archives or cache files
type StorageError struct {
	Path string
	Op   string // "open", "read", "write", "query"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Invariant kinds reported by InvariantError
const (
	InvariantEmpty = "empty"
	InvariantOrder = "order"
)

// InvariantError reports a transcript that breaks an assumption of the
// analysis (no messages, timestamps going backwards).
type InvariantError struct {
	Kind   string
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invariant violation [%s]", e.Kind)
	}
	return fmt.Sprintf("invariant violation [%s]: %s", e.Kind, e.Detail)
}

// ConfigError represents errors loading configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
